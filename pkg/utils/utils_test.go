package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSigner_RoundTrip(t *testing.T) {
	s := NewSessionSigner("secret", time.Hour)
	token, err := s.Issue("abc")
	require.NoError(t, err)

	id, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestSessionSigner_Rejects(t *testing.T) {
	s := NewSessionSigner("secret", time.Hour)
	other := NewSessionSigner("other", time.Hour)
	expired := NewSessionSigner("secret", -time.Minute)

	forged, err := other.Issue("abc")
	require.NoError(t, err)
	_, err = s.Parse(forged)
	assert.Error(t, err)

	old, err := expired.Issue("abc")
	require.NoError(t, err)
	_, err = s.Parse(old)
	assert.Error(t, err)

	_, err = s.Parse("not-a-token")
	assert.Error(t, err)

	_, err = NewSessionSigner("", time.Hour).Issue("abc")
	assert.Error(t, err)
}

func TestExtractSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ExtractSessionToken(r)
	assert.ErrorIs(t, err, ErrNoSessionToken)

	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	tok, err := ExtractSessionToken(r)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", tok)

	r.Header.Set(SessionHeader, "from-header")
	tok, err = ExtractSessionToken(r)
	require.NoError(t, err)
	assert.Equal(t, "from-header", tok)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusConflict, "product unavailable")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"product unavailable"}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		ProductID string `json:"productId"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":"1"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "1", dst.ProductID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product":"1"}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("x", 1))
	assert.Equal(t, 1, ParseInt("", 1))

	assert.Nil(t, ParseOptionalBool(""))
	assert.Nil(t, ParseOptionalBool("maybe"))
	require.NotNil(t, ParseOptionalBool("true"))
	assert.True(t, *ParseOptionalBool("true"))
}
