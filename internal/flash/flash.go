// Package flash queues one-time notices in a cookie for display on the next
// rendered page.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "flash"

// Set queues messages for the next page render, replacing any pending ones.
func Set(w http.ResponseWriter, messages []string) {
	if len(messages) == 0 {
		return
	}

	blob, err := json.Marshal(messages)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  cookieName,
		Value: base64.URLEncoding.EncodeToString(blob),
		Path:  "/",
	})
}

// Take returns pending notices and clears them. Unreadable payloads are
// dropped silently.
func Take(w http.ResponseWriter, r *http.Request) []string {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:   cookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	blob, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	var messages []string
	if err := json.Unmarshal(blob, &messages); err != nil {
		return nil
	}
	return messages
}
