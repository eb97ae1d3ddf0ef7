package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const entryPrefix = "entry:"

// BadgerLog keeps the message log in an embedded BadgerDB. Keys are
// formatted as "entry:{sequence_padded}" with 19-digit zero padding so a
// forward prefix scan yields append order lexicographically. Sequence
// numbers may skip after a restart; only their relative order matters.
type BadgerLog struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewBadgerLog(dir string) (*BadgerLog, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger log: %w", err)
	}
	seq, err := db.GetSequence([]byte("guestbook_seq"), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open badger sequence: %w", err)
	}
	return &BadgerLog{db: db, seq: seq}, nil
}

func (l *BadgerLog) Append(line string) error {
	n, err := l.seq.Next()
	if err != nil {
		return fmt.Errorf("failed to advance badger sequence: %w", err)
	}
	key := fmt.Sprintf("%s%019d", entryPrefix, n)
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(line))
	})
	if err != nil {
		return fmt.Errorf("failed to store guestbook entry: %w", err)
	}
	return nil
}

func (l *BadgerLog) ReadAll() ([]string, error) {
	prefix := []byte(entryPrefix)
	var lines []string
	err := l.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				lines = append(lines, string(value))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read guestbook entries: %w", err)
	}
	return lines, nil
}

// Close releases the sequence lease before closing the database so unused
// numbers are returned instead of burned.
func (l *BadgerLog) Close() error {
	if err := l.seq.Release(); err != nil {
		l.db.Close()
		return fmt.Errorf("failed to release badger sequence: %w", err)
	}
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger log: %w", err)
	}
	return nil
}
