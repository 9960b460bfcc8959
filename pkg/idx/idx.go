// Package idx generates the identifiers tally hands out: user IDs and
// request IDs. Both are ULIDs, 26 Crockford base32 characters that sort by
// creation time.
package idx

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Len is the length of every generated ID.
const Len = ulid.EncodedSize

// New returns a fresh ID. IDs from one process are strictly increasing,
// even within the same millisecond.
func New() string {
	return ulid.Make().String()
}

// Valid reports whether s is a well-formed ID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Created returns the time embedded in id, or false if id is malformed.
func Created(id string) (time.Time, bool) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()).UTC(), true
}
