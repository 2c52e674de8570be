package store

import (
	"log/slog"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
)

// Option configures a Store.
type Option func(*Store)

// WithStorage hydrates the store from s and persists every mutation to it.
func WithStorage(s storage.LocalStorage) Option {
	return func(st *Store) {
		st.storage = s
	}
}

// WithTimeFunc sets the clock used for createdAt. Defaults to time.Now.
func WithTimeFunc(fn func() time.Time) Option {
	return func(st *Store) {
		if fn != nil {
			st.timeFunc = fn
		}
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(st *Store) {
		if logger != nil {
			st.logger = logger
		}
	}
}
