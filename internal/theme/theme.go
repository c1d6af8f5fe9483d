package theme

import (
	"net/http"
	"time"
)

const (
	Normal     = "normal"
	Accessible = "accessible"

	param  = "theme"
	cookie = "theme"
	maxAge = 365 * 24 * time.Hour
)

func valid(t string) bool {
	return t == Normal || t == Accessible
}

// Resolve picks the theme for r: a known ?theme= value, then a known
// theme cookie, then Normal. explicit is true whenever ?theme= is present,
// meaning the caller should Persist the result.
func Resolve(r *http.Request) (t string, explicit bool) {
	requested := r.URL.Query().Get(param)
	explicit = requested != ""
	if valid(requested) {
		return requested, explicit
	}
	if c, err := r.Cookie(cookie); err == nil && valid(c.Value) {
		return c.Value, explicit
	}
	return Normal, explicit
}

func Persist(w http.ResponseWriter, t string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie,
		Value:    t,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
