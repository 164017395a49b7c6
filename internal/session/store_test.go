package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"dukapos/internal/access"
	"dukapos/internal/storage"
	"dukapos/internal/upstream"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAuthServer(t *testing.T, role string, loginStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if loginStatus != http.StatusOK {
				w.WriteHeader(loginStatus)
				json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"token": "tok-login",
					"user": map[string]interface{}{
						"user_id":     uuid.NewString(),
						"username":    "asha",
						"name":        "Asha Mushi",
						"role":        role,
						"branch_id":   uuid.NewString(),
						"branch_name": "Kariakoo",
					},
				},
			})
		case "/auth/logout":
			json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]string{}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestSession(t *testing.T, srv *httptest.Server, path string) *Store {
	t.Helper()
	sess := New(storage.NewFileStore(path))
	client := upstream.NewClient(srv.URL, 5*time.Second, sess)
	sess.AttachClient(client)
	return sess
}

func TestLoginPersistsSession(t *testing.T) {
	srv := fakeAuthServer(t, "cashier", http.StatusOK)
	path := filepath.Join(t.TempDir(), "session.json")
	sess := newTestSession(t, srv, path)

	require.NoError(t, sess.Login(context.Background(), "asha", "secret"))
	require.True(t, sess.Authenticated())

	id, ok := sess.Identity()
	require.True(t, ok)
	assert.Equal(t, access.RoleCashier, id.Role)
	assert.Equal(t, "Kariakoo", id.BranchName)
	assert.Equal(t, "tok-login", sess.Token())

	// A fresh store over the same file restores the session without a login
	restored := newTestSession(t, srv, path)
	restored.Hydrate(context.Background())
	require.True(t, restored.Authenticated())
	rid, _ := restored.Identity()
	assert.Equal(t, access.RoleCashier, rid.Role)
	assert.Equal(t, "tok-login", restored.Token())
}

func TestLoginFailureLeavesNoState(t *testing.T) {
	srv := fakeAuthServer(t, "cashier", http.StatusUnauthorized)
	path := filepath.Join(t.TempDir(), "session.json")
	sess := newTestSession(t, srv, path)

	err := sess.Login(context.Background(), "asha", "wrong")
	require.Error(t, err)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())

	// Nothing was written to durable storage either
	fresh := newTestSession(t, srv, path)
	fresh.Hydrate(context.Background())
	assert.False(t, fresh.Authenticated())
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	srv := fakeAuthServer(t, "owner", http.StatusOK)
	path := filepath.Join(t.TempDir(), "session.json")
	sess := newTestSession(t, srv, path)

	err := sess.Login(context.Background(), "asha", "secret")
	require.Error(t, err)
	assert.False(t, sess.Authenticated(), "unknown role must fail login, not degrade")
}

func TestLogoutClearsMemoryAndStorage(t *testing.T) {
	srv := fakeAuthServer(t, "manager", http.StatusOK)
	path := filepath.Join(t.TempDir(), "session.json")
	sess := newTestSession(t, srv, path)

	require.NoError(t, sess.Login(context.Background(), "asha", "secret"))
	require.NoError(t, sess.Logout(context.Background()))

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())

	fresh := newTestSession(t, srv, path)
	fresh.Hydrate(context.Background())
	assert.False(t, fresh.Authenticated())
}

func TestHydrateDiscardsExpiredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := storage.NewFileStore(path)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "asha",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	identity, _ := json.Marshal(Identity{Username: "asha", RoleName: "cashier"})
	require.NoError(t, st.Save(context.Background(), token, identity))

	sess := New(st)
	sess.Hydrate(context.Background())
	assert.False(t, sess.Authenticated())

	// The stale record was cleared, not just skipped
	_, _, err = st.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestHydrateAcceptsOpaqueToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := storage.NewFileStore(path)

	identity, _ := json.Marshal(Identity{Username: "asha", RoleName: "cashier"})
	require.NoError(t, st.Save(context.Background(), "not-a-jwt", identity))

	sess := New(st)
	sess.Hydrate(context.Background())
	assert.True(t, sess.Authenticated(), "non-JWT tokens are opaque and never expire locally")
}

func TestHydrateClearsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := storage.NewFileStore(path)

	identity, _ := json.Marshal(Identity{Username: "asha", RoleName: "owner"})
	require.NoError(t, st.Save(context.Background(), "tok", identity))

	sess := New(st)
	sess.Hydrate(context.Background())
	assert.False(t, sess.Authenticated())

	_, _, err := st.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoSession)
}

func TestRefreshRequiresSession(t *testing.T) {
	sess := New(storage.NewFileStore(filepath.Join(t.TempDir(), "s.json")))
	err := sess.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
