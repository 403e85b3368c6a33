// Package client talks to the Inbox Zero REST API on behalf of the terminal client.
//
// A Client owns the current Session and persists it through a SessionStore.
// Any 401 from the server clears the stored session and surfaces as ErrUnauthenticated.
package client
