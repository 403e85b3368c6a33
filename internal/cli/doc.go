// Package cli implements the inboxctl read-eval-print loop and its text renderer.
package cli
