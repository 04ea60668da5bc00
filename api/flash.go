package api

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const flashCookieName = "flash"

// Flash levels, matching the CSS classes of the message banner.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// flashJar keeps flash messages in a signed cookie. Cookies without a valid signature are ignored.
type flashJar struct {
	key []byte
}

// newFlashJar derives the signing key from secret. Without a secret the key is random,
// so pending messages do not survive a restart.
func newFlashJar(secret []byte) flashJar {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal().Err(err).Msg("error generating flash signing key")
		}
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("flash-cookie"))
	return flashJar{key: mac.Sum(nil)}
}

func (j flashJar) sign(payload string) string {
	mac := hmac.New(sha256.New, j.key)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (j flashJar) encode(flashes []Flash) (string, error) {
	data, err := json.Marshal(flashes)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(data)
	return payload + "." + j.sign(payload), nil
}

func (j flashJar) decode(value string) []Flash {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok || !hmac.Equal([]byte(signature), []byte(j.sign(payload))) {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// add queues a message for the next page, keeping any already queued in this request.
func (j flashJar) add(w http.ResponseWriter, r *http.Request, level, text string) {
	value, err := j.encode(append(j.read(r), Flash{Level: level, Text: text}))
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pop returns the queued messages and clears them.
func (j flashJar) pop(w http.ResponseWriter, r *http.Request) []Flash {
	flashes := j.read(r)
	if _, err := r.Cookie(flashCookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}

func (j flashJar) read(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return j.decode(cookie.Value)
}
