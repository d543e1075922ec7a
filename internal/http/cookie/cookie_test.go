package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSession(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSession(rec, "jwt-token", 7, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "jwt", c.Name)
	assert.Equal(t, "jwt-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, "/", c.Path)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), c.Expires, time.Minute)
}

func TestSetSession_SecureInProd(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSession(rec, "jwt-token", 7, true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestClearSession(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSession(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "jwt", c.Name)
	assert.Equal(t, "loggedout", c.Value)
	assert.WithinDuration(t, time.Now().Add(10*time.Second), c.Expires, time.Minute)
}

func TestReadSession(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   string
	}{
		{name: "valid cookie", cookie: &http.Cookie{Name: "jwt", Value: "jwt-token"}, want: "jwt-token"},
		{name: "logged out cookie", cookie: &http.Cookie{Name: "jwt", Value: "loggedout"}, want: ""},
		{name: "no cookie", cookie: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			assert.Equal(t, tt.want, ReadSession(req))
		})
	}
}
