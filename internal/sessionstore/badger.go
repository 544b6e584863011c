package sessionstore

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const badgerGCInterval = 5 * time.Minute

// BadgerStorage is a fiber.Storage backed by an embedded badger database
type BadgerStorage struct {
	db   *badger.DB
	stop chan struct{}
}

var _ fiber.Storage = (*BadgerStorage)(nil)

// NewBadgerStorage opens the badger database at path. An empty path keeps
// the database in memory.
func NewBadgerStorage(path string) (*BadgerStorage, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "sessionstore: could not open badger database")
	}
	s := &BadgerStorage{
		db:   db,
		stop: make(chan struct{}),
	}
	if path != "" {
		go s.gc()
	}
	return s, nil
}

func (s *BadgerStorage) gc() {
	ticker := time.NewTicker(badgerGCInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			for s.db.RunValueLogGC(0.7) == nil {
			}
		}
	}
}

// Get returns the value stored for key; nil if there is none
func (s *BadgerStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var value []byte
	err := s.db.View(
		func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			value, err = item.ValueCopy(nil)
			return err
		},
	)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	return value, errors.WithStack(err)
}

// Set stores val for key; exp of 0 means no expiry
func (s *BadgerStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return errors.WithStack(
		s.db.Update(
			func(txn *badger.Txn) error {
				entry := badger.NewEntry([]byte(key), val)
				if exp > 0 {
					entry = entry.WithTTL(exp)
				}
				return txn.SetEntry(entry)
			},
		),
	)
}

// Delete deletes the value stored for key
func (s *BadgerStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return errors.WithStack(
		s.db.Update(
			func(txn *badger.Txn) error {
				return txn.Delete([]byte(key))
			},
		),
	)
}

// Reset deletes all values
func (s *BadgerStorage) Reset() error {
	return errors.WithStack(s.db.DropAll())
}

// Close stops the garbage collection and closes the database
func (s *BadgerStorage) Close() error {
	close(s.stop)
	return errors.WithStack(s.db.Close())
}
