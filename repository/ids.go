package repository

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IDGenerator returns a new identifier starting with prefix.
type IDGenerator func(prefix string) string

// NewID returns prefix followed by a version 7 UUID. V7 ids are time ordered and
// unique even when drawn within the same millisecond.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		return prefix + uuid.NewString()
	}
	return prefix + id.String()
}

const maxIDAttempts = 16

var errIDExhausted = errors.New("could not generate an unused id")

// freshID draws ids until one is not in taken.
func freshID(gen IDGenerator, prefix string, taken func(string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := gen(prefix)
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", errIDExhausted
}

// Option configures a repository.
type Option func(*options)

type options struct {
	log   *zap.Logger
	newID IDGenerator
}

// WithLogger sets the logger used to report storage problems.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		if g != nil {
			o.newID = g
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), newID: NewID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
