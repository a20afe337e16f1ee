package bookings

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenbiz25/manifestdublin/globals"
	"github.com/kenbiz25/manifestdublin/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	router.GET("/ws/admin", NewFeed().HandleWS)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dialFeed(t *testing.T, srv *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/admin" + query
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestHandleWSRejectsAnonymous(t *testing.T) {
	srv := newFeedServer(t)

	conn, resp, err := dialFeed(t, srv, "")
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWSRejectsBadToken(t *testing.T) {
	srv := newFeedServer(t)

	conn, resp, err := dialFeed(t, srv, "?token=not-a-jwt")
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleWSRejectsUnknownSession(t *testing.T) {
	srv := newFeedServer(t)

	// Properly signed token, but no matching session was ever recorded.
	claims := &middleware.Claims{
		Name:   "Nobody",
		Email:  "nobody@example.com",
		UserID: "uWsFeedTest0",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)

	conn, resp, err := dialFeed(t, srv, "?token="+signed)
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
