// Package history stores REPL input across sessions in a bbolt database.
// Entries are keyed by a big-endian sequence number, so cursor order is
// insertion order.
package history

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	bolt "go.etcd.io/bbolt"
)

const bucketCmd = "cmd"

// ErrNoMatchingCmd is returned when no entry satisfies a query.
var ErrNoMatchingCmd = errors.New("no matching command")

// Entry is one stored input.
type Entry struct {
	Seq  int
	Text string
}

// Store is a history database. Safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// DefaultPath returns $XDG_STATE_HOME/<app>/history.db, falling back to
// ~/.local/state.
func DefaultPath(app string) (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, app, "history.db"), nil
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add appends text and returns its sequence number.
func (s *Store) Add(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	if err != nil {
		return 0, err
	}
	return safecast.Conv[int](seq)
}

// Get returns the entry with the given sequence number.
func (s *Store) Get(seq int) (string, error) {
	key, err := keyFor(seq)
	if err != nil {
		return "", err
	}
	var text string
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCmd)).Get(key)
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// Delete removes one entry. Deleting a missing entry is not an error.
func (s *Store) Delete(seq int) error {
	key, err := keyFor(seq)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCmd)).Delete(key)
	})
}

// List returns the entries with from <= Seq < upto in order.
func (s *Store) List(from, upto int) ([]Entry, error) {
	start, err := keyFor(max(from, 0))
	if err != nil {
		return nil, err
	}
	var out []Entry
	err = s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Seek(start); k != nil; k, v = c.Next() {
			e, err := entry(k, v)
			if err != nil {
				return err
			}
			if e.Seq >= upto {
				break
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// Last returns up to n most recent entries, oldest first.
func (s *Store) Last(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Last(); k != nil && len(out) < n; k, v = c.Prev() {
			e, err := entry(k, v)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	// курсор шёл с конца
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, err
}

// PrevWithPrefix finds the last entry before upto (exclusive) starting with
// prefix.
func (s *Store) PrevWithPrefix(upto int, prefix string) (Entry, error) {
	key, err := keyFor(max(upto, 0))
	if err != nil {
		return Entry{}, err
	}
	var found Entry
	err = s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		k, v := c.Seek(key)
		if k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		p := []byte(prefix)
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, p) {
				e, err := entry(k, v)
				if err != nil {
					return err
				}
				found = e
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return found, err
}

func keyFor(seq int) ([]byte, error) {
	u, err := safecast.Conv[uint64](seq)
	if err != nil {
		return nil, fmt.Errorf("history sequence %d: %w", seq, err)
	}
	return marshalSeq(u), nil
}

func entry(k, v []byte) (Entry, error) {
	seq, err := safecast.Conv[int](binary.BigEndian.Uint64(k))
	if err != nil {
		return Entry{}, err
	}
	return Entry{Seq: seq, Text: string(v)}, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
