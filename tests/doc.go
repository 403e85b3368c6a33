// Package tests holds the shared test helpers for Inbox Zero.
//
// fixtures builds users and emails, mocks provides testify mocks of the
// repositories and services, and integration runs the API, the SMTP listener
// and the client against PostgreSQL in a container (build tag "integration").
package tests
