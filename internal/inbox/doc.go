// Package inbox derives progress, filtered views and the celebration state
// from a user's full email list. Every function here is pure over its input
// slice; the caller owns the authoritative list.
package inbox
