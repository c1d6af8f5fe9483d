package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"appeal-archive/internal/flash"
	"appeal-archive/internal/models"
)

const SessionCookie = "session"

const (
	msgLoginRequired = "Для доступа к данной странице необходимо войти в систему."
	msgAdminRequired = "Недостаточно прав для доступа к данной странице."
)

type contextKey string

const userContextKey contextKey = "user"

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFrom returns the logged-in user or nil.
func UserFrom(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}

// CurrentUser is the view of the requester handed to templates.
type CurrentUser struct {
	IsAuthenticated bool
	IsAdmin         bool
	Username        string
}

func Current(ctx context.Context) CurrentUser {
	u := UserFrom(ctx)
	if u == nil {
		return CurrentUser{}
	}
	return CurrentUser{IsAuthenticated: true, IsAdmin: u.IsAdmin, Username: u.Username}
}

func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// LoadUser attaches the session's user, if any, to every request.
func (g *Gate) LoadUser(log logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := g.Authenticate(r.Context(), token)
			switch {
			case err == nil:
				r = r.WithContext(WithUser(r.Context(), user))
			case errors.Is(err, ErrNotAuthenticated):
				ClearSessionCookie(w)
			default:
				log.WithError(err).Warn("session lookup failed")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin sends anonymous requests to the login page, remembering
// where they were going.
func RequireLogin(jar *flash.Jar) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFrom(r.Context()) == nil {
				jar.Add(w, r, flash.Message{Kind: flash.Info, Text: msgLoginRequired})
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin lets only administrators through; other logged-in users
// are sent home with an explanation.
func RequireAdmin(jar *flash.Jar) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFrom(r.Context())
			if user == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			if !user.IsAdmin {
				jar.Add(w, r, flash.Message{Kind: flash.Error, Text: msgAdminRequired})
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
