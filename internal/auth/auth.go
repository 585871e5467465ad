package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	CookieName    = "tastevin_session"
	SessionExpiry = 24 * time.Hour
)

// session ties a token to the event its holder organizes
type session struct {
	eventID int
	expiry  time.Time
}

// Auth handles organizer authentication. An organizer logs in with the event
// PIN and receives a session token scoped to that event only.
type Auth struct {
	sessions map[string]session
	mu       sync.RWMutex
}

// New creates a new Auth instance
func New() *Auth {
	return &Auth{
		sessions: make(map[string]session),
	}
}

// generateToken creates a random 32-byte hex token
func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure is not recoverable
	}
	return hex.EncodeToString(b)
}

// CreateSession issues a new organizer session for an event
func (a *Auth) CreateSession(eventID int) string {
	token := generateToken()
	a.mu.Lock()
	a.sessions[token] = session{eventID: eventID, expiry: time.Now().Add(SessionExpiry)}
	a.mu.Unlock()
	return token
}

// Logout invalidates a session token
func (a *Auth) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// ValidateSession checks a token and returns the event it is scoped to
func (a *Auth) ValidateSession(token string) (int, bool) {
	a.mu.RLock()
	s, exists := a.sessions[token]
	a.mu.RUnlock()

	if !exists {
		return 0, false
	}

	if time.Now().After(s.expiry) {
		a.mu.Lock()
		delete(a.sessions, token)
		a.mu.Unlock()
		return 0, false
	}

	return s.eventID, true
}

// SetSessionCookie writes the session cookie on a response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RequireOrganizerAPI is middleware for JSON endpoints that require an
// organizer session for the event named by the {id} URL parameter.
func (a *Auth) RequireOrganizerAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		sessionEventID, ok := a.ValidateSession(cookie.Value)
		if !ok {
			writeUnauthorized(w)
			return
		}

		eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || eventID != sessionEventID {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Organizer session required"}`))
}
