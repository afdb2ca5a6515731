package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndTake(t *testing.T) {
	w := httptest.NewRecorder()
	Set(w, []string{"3300 kilometers travelled", "264 litres used"})

	r := httptest.NewRequest(http.MethodGet, "/route", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	w2 := httptest.NewRecorder()
	messages := Take(w2, r)
	require.Len(t, messages, 2)
	assert.Equal(t, "3300 kilometers travelled", messages[0])
	assert.Equal(t, "264 litres used", messages[1])

	// Take must clear the cookie
	cleared := false
	for _, c := range w2.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "flash cookie should be expired after Take")
}

func TestTakeWithoutPending(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, Take(w, r))
}

func TestTakeGarbageCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "not-base64!"})
	assert.Nil(t, Take(w, r))
}

func TestSetEmptyIsNoop(t *testing.T) {
	w := httptest.NewRecorder()
	Set(w, nil)
	assert.Empty(t, w.Result().Cookies())
}
