package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/teambitewolf/news-hole/internal/config"
	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/middleware"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// SetupRoutes configures the router: health and version endpoints, and the
// rate limited account group under the API base path.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(corsMiddleware(s.Config.CORS))

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger(s.proxies))
	}
	r.Use(middleware.SecurityHeaders())

	r.Get(constants.HealthPath, s.healthCheck)
	r.Get(constants.VersionPath, s.version)

	r.Route(constants.APIBasePath+constants.AccountPath, func(r chi.Router) {
		r.Use(middleware.RateLimit(s.rateLimits, constants.RateLimitCategoryAccount, s.proxies))
		r.Use(chimiddleware.NoCache)

		h := s.Handlers.AccountHandler

		r.Post("/", h.CreateAccount)
		r.Post(constants.RouteLogin, h.Login)
		r.Post(constants.RoutePasswordReset, h.RequestPasswordReset)
		r.Get(constants.RoutePasswordToken, h.CheckResetToken)
		r.Post(constants.RoutePasswordChange, h.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.jwtService))
			r.Get(constants.RouteInfo, h.GetAccountInfo)
		})
	})

	s.router = r
}

// GetRouter returns the configured router
func (s *Server) GetRouter() chi.Router {
	return s.router
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.Db.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnavailable, nil)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
	})
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"version":     s.Config.App.Version,
		"environment": s.Config.App.Environment,
	})
}

// corsMiddleware answers preflight requests and sets CORS headers for
// allowed origins. A "*" entry allows any origin.
func corsMiddleware(cors config.CORSSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !originAllowed(cors.AllowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if cors.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
				"Accept",
				constants.HeaderAuthorization,
				constants.HeaderContentType,
				constants.HeaderXRequestID,
			}, ", "))
			w.Header().Set("Access-Control-Max-Age", "300")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
