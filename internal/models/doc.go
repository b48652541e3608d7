// Package models holds value snapshots of Letta entities and the lenient
// parsers that build them from upstream JSON.
//
// Identity fields are strict: a record without them is rejected with a
// *ParseError. Everything else is optional and defaults to its zero value.
// List parsers skip malformed items and report how many were skipped.
package models
