// Package letta exposes typed Letta REST operations.
//
// Every call goes through the retry policy and the shared transport, and
// every response is parsed into models snapshots. Callers never see raw
// upstream JSON.
package letta
