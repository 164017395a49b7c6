// Package session owns the authenticated identity of the terminal: one
// operator at a time, hydrated from durable storage at startup, destroyed on
// logout. The role is immutable for the session's lifetime; every view
// access check reads it from here.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"dukapos/internal/access"
	"dukapos/internal/storage"
	"dukapos/internal/upstream"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Identity is the operator record kept for the session's lifetime and
// serialized into durable storage.
type Identity struct {
	UserID     uuid.UUID   `json:"user_id"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Role       access.Role `json:"-"`
	RoleName   string      `json:"role"`
	BranchID   uuid.UUID   `json:"branch_id"`
	BranchName string      `json:"branch_name"`
}

// Store is the single mutable session state of the gateway. It implements
// upstream.TokenSource so the client injects the current token into every
// call. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	storage  storage.Store
	client   *upstream.Client
	token    string
	identity *Identity
}

func New(st storage.Store) *Store {
	return &Store{storage: st}
}

// AttachClient wires the upstream client after construction. The client needs
// the store as its TokenSource, so the two are created in sequence at the
// composition root.
func (s *Store) AttachClient(c *upstream.Client) { s.client = c }

// Token implements upstream.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns a copy of the current identity, if any.
func (s *Store) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Authenticated reports whether an operator is logged in.
func (s *Store) Authenticated() bool {
	_, ok := s.Identity()
	return ok
}

// AssignedBranch returns the branch the operator is attached to.
func (s *Store) AssignedBranch() (uuid.UUID, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return uuid.Nil, ""
	}
	return s.identity.BranchID, s.identity.BranchName
}

// Hydrate restores a previously saved session from durable storage. A saved
// token that is already expired is discarded (and the storage cleared) so
// dependent views redirect to login instead of failing on the first call.
func (s *Store) Hydrate(ctx context.Context) {
	token, raw, err := s.storage.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoSession) {
			log.Warn().Err(err).Msg("session storage unreadable, starting unauthenticated")
		}
		return
	}

	var ident Identity
	if err := json.Unmarshal(raw, &ident); err != nil {
		log.Warn().Err(err).Msg("saved identity unreadable, clearing session")
		_ = s.storage.Clear(ctx)
		return
	}
	role, err := access.ParseRole(ident.RoleName)
	if err != nil {
		log.Warn().Err(err).Msg("saved identity has unknown role, clearing session")
		_ = s.storage.Clear(ctx)
		return
	}
	ident.Role = role

	if expired, exp := tokenExpired(token); expired {
		log.Info().Time("expired_at", exp).Msg("saved token expired, clearing session")
		_ = s.storage.Clear(ctx)
		return
	}

	s.mu.Lock()
	s.token = token
	s.identity = &ident
	s.mu.Unlock()
	log.Info().Str("username", ident.Username).Str("role", ident.RoleName).Msg("session restored")
}

// Login authenticates against the central API. Fails closed: on any error no
// partial session state is kept in memory or storage.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if s.client == nil {
		return errors.New("session: no upstream client attached")
	}
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	role, err := access.ParseRole(res.User.Role)
	if err != nil {
		return err
	}
	ident := Identity{
		UserID:     res.User.UserID,
		Username:   res.User.Username,
		Name:       res.User.Name,
		Role:       role,
		RoleName:   res.User.Role,
		BranchID:   res.User.BranchID,
		BranchName: res.User.BranchName,
	}

	raw, err := json.Marshal(ident)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, res.Token, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = res.Token
	s.identity = &ident
	s.mu.Unlock()
	log.Info().Str("username", ident.Username).Str("role", ident.RoleName).Msg("logged in")
	return nil
}

// Logout clears memory and durable storage synchronously, then revokes the
// token upstream best-effort.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	hadSession := s.identity != nil
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		return err
	}
	if hadSession && s.client != nil {
		if err := s.client.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("upstream token revocation failed")
		}
	}
	return nil
}

// Refresh swaps the token when the central API rotates it.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	res, err := s.client.Refresh(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = res.Token
	ident := s.identity
	s.mu.Unlock()

	raw, err := json.Marshal(ident)
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, res.Token, raw)
}

// tokenExpired reads the exp claim without verifying the signature: the
// gateway never holds the signing secret; it only needs to know whether a
// saved token is worth presenting. Tokens that are not JWTs are treated as
// non-expiring opaque strings.
func tokenExpired(token string) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return exp.Before(time.Now()), exp.Time
}
