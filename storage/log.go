// Package storage persists the guestbook message log.
package storage

// Log is the append-only message log. Implementations keep messages in
// submission order: once Append returns nil, the line is visible at the end
// of every subsequent ReadAll on the same instance. An absent log reads as
// an empty one.
type Log interface {
	Append(line string) error
	ReadAll() ([]string, error)
	Close() error
}
