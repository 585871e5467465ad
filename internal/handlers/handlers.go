package handlers

import (
	"github.com/mbellini/tastevin/internal/auth"
	"github.com/mbellini/tastevin/internal/services"
	"github.com/mbellini/tastevin/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Participant  services.ParticipantServicer
	Event        services.EventServicer
	Wine         services.WineServicer
	Rating       services.RatingServicer
	Completeness services.CompletenessServicer
	Report       services.ReportServicer
	Pagella      services.PagellaServicer
	Auth         *auth.Auth
	Hub          *websocket.Hub
	Log          HTTPLogger
	BaseURL      string
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// New creates a new Handlers instance with all dependencies
func New(
	participant services.ParticipantServicer,
	event services.EventServicer,
	wine services.WineServicer,
	rating services.RatingServicer,
	completeness services.CompletenessServicer,
	report services.ReportServicer,
	pagella services.PagellaServicer,
	sessionAuth *auth.Auth,
	hub *websocket.Hub,
	log HTTPLogger,
	baseURL string,
) *Handlers {
	return &Handlers{
		Participant:  participant,
		Event:        event,
		Wine:         wine,
		Rating:       rating,
		Completeness: completeness,
		Report:       report,
		Pagella:      pagella,
		Auth:         sessionAuth,
		Hub:          hub,
		Log:          log,
		BaseURL:      baseURL,
	}
}

// NewForTesting creates a Handlers instance without a hub for API tests
func NewForTesting(
	participant services.ParticipantServicer,
	event services.EventServicer,
	wine services.WineServicer,
	rating services.RatingServicer,
	completeness services.CompletenessServicer,
	report services.ReportServicer,
	pagella services.PagellaServicer,
) *Handlers {
	return &Handlers{
		Participant:  participant,
		Event:        event,
		Wine:         wine,
		Rating:       rating,
		Completeness: completeness,
		Report:       report,
		Pagella:      pagella,
		Auth:         auth.New(),
		Log:          NoopHTTPLogger{},
		BaseURL:      "http://localhost:8080",
	}
}
