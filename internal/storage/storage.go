// Package storage is the durable client storage for the terminal session.
// It keeps exactly two values, the opaque session token and the serialized
// identity record. Written on login, cleared on logout, read on startup.
package storage

import (
	"context"
	"errors"
)

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("storage: no saved session")

// Store persists the session token and identity record. Implementations must
// never expose a partial session: Load either returns both values or
// ErrNoSession.
type Store interface {
	Save(ctx context.Context, token string, identity []byte) error
	Load(ctx context.Context) (token string, identity []byte, err error)
	Clear(ctx context.Context) error
}
