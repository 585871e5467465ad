package app

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mbellini/tastevin/internal/auth"
	"github.com/mbellini/tastevin/internal/handlers"
	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/repository"
	"github.com/mbellini/tastevin/internal/services"
	"github.com/mbellini/tastevin/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
	hub      *websocket.Hub
}

// New creates and initializes a new application instance
func New(log logger.Logger, dbPath, baseURL string) (*App, error) {
	repo, err := repository.New(dbPath)
	if err != nil {
		return nil, err
	}

	// Initialize services
	participantService := services.NewParticipantService(log, repo)
	eventService := services.NewEventService(log, repo)
	wineService := services.NewWineService(log, repo)
	participationService := services.NewParticipationService(log, repo)
	completenessService := services.NewCompletenessService(log, repo, participationService)
	rankingService := services.NewRankingService(log, repo, participationService)
	ratingService := services.NewRatingService(log, repo, completenessService)
	reportService := services.NewReportService(log, repo, completenessService, rankingService)
	pagellaService := services.NewPagellaService(log, repo)

	// Initialize WebSocket hub and wire it as the live-progress broadcaster
	hub := websocket.New(log)
	hub.Start()
	ratingService.SetBroadcaster(hub)
	reportService.SetBroadcaster(hub)

	sessionAuth := auth.New()

	h := handlers.New(
		participantService,
		eventService,
		wineService,
		ratingService,
		completenessService,
		reportService,
		pagellaService,
		sessionAuth,
		hub,
		log,
		baseURL,
	)

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
		hub:      hub,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases app resources
func (a *App) Close() error {
	return a.repo.Close()
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	a.log.Info("Server starting", "addr", addr)
	return http.ListenAndServe(addr, a.Router())
}

// DetectBaseURL builds the join-link base URL from the best LAN address,
// so QR codes work for guests on the same network
func DetectBaseURL(addr string) string {
	return fmt.Sprintf("http://%s%s", getPreferredIP(realNetworkProvider{}), addr)
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses (192.168.x.x, 10.x.x.x, 172.16-31.x.x).
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only consider IPv4 addresses
			if ip == nil || ip.To4() == nil {
				continue
			}

			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	// Prefer private network addresses
	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
