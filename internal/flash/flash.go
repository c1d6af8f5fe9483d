// Package flash carries one-shot user messages across a redirect in a
// signed cookie.
package flash

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "flash"
	lifetime   = 5 * time.Minute
)

const (
	Info  = "info"
	Error = "error"
)

type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// Jar signs and verifies flash cookies with an HMAC secret.
type Jar struct {
	secret []byte
}

func NewJar(secret string) *Jar {
	return &Jar{secret: []byte(secret)}
}

// Add queues msgs for the next rendered page, keeping any messages the
// request still carries.
func (j *Jar) Add(w http.ResponseWriter, r *http.Request, msgs ...Message) {
	pending := append(j.read(r), msgs...)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
		},
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the messages carried by r and clears the cookie.
func (j *Jar) Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := j.read(r)
	if _, err := r.Cookie(cookieName); err == nil {
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
	}
	return msgs
}

func (j *Jar) read(r *http.Request) []Message {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	var cl claims
	_, err = jwt.ParseWithClaims(c.Value, &cl, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return cl.Messages
}
