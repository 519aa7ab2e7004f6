package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newSessionForCSRF(t *testing.T) *Session {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sm := NewSessionManager(client, "test_session", "secret", time.Hour, false)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	return sess
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	cm := NewCSRFManager("csrfsecret")
	sess := newSessionForCSRF(t)

	token, err := cm.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// EnsureToken is stable for a session
	again, err := cm.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, token, again)

	require.NoError(t, cm.VerifyToken(context.Background(), sess, token))
}

func TestCSRFTokenMismatch(t *testing.T) {
	cm := NewCSRFManager("csrfsecret")
	sess := newSessionForCSRF(t)

	_, err := cm.EnsureToken(context.Background(), sess)
	require.NoError(t, err)

	require.ErrorIs(t, cm.VerifyToken(context.Background(), sess, ""), ErrCSRFTokenMissing)
	require.ErrorIs(t, cm.VerifyToken(context.Background(), sess, "forged"), ErrCSRFTokenMismatch)
}
