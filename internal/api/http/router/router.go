package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/lovebomb-server/internal/api/http/handler"
	"github.com/dtroode/lovebomb-server/internal/api/http/middleware"
	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/model"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Auth       handler.AuthService
	Friend     handler.FriendService
	Connection handler.ConnectionService
	Notepad    handler.NotepadService
	Note       handler.NoteService
	Tokens     middleware.TokenService
}

// Options tunes cross-cutting HTTP behaviour.
type Options struct {
	CORSOrigins       []string
	RequestTimeout    time.Duration
	RateLimitRequests int
	AuthRateLimit     int
	RateLimitWindow   time.Duration
	// HealthCheck, when set, must succeed for /healthz to report ok.
	HealthCheck func(ctx context.Context) error
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	services       Services
	opts           Options
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(services Services, opts Options, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		opts:           opts,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the HTTP handler with every route and middleware.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Metrics)
	if r.opts.RequestTimeout > 0 {
		mux.Use(chimw.Timeout(r.opts.RequestTimeout))
	}
	if r.opts.RateLimitRequests > 0 {
		mux.Use(httprate.LimitByIP(r.opts.RateLimitRequests, r.opts.RateLimitWindow))
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id", middleware.AuthTokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/healthz", r.healthz)
	mux.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuth(r.services.Auth, r.contextManager, r.logger)
	friendHandler := handler.NewFriend(r.services.Friend, r.contextManager, r.logger)
	connectionHandler := handler.NewConnection(r.services.Connection, r.contextManager, r.logger)
	notepadHandler := handler.NewNotepad(r.services.Notepad, r.contextManager, r.logger)
	noteHandler := handler.NewNote(r.services.Note, r.contextManager, r.logger)

	mux.Route("/api/auth", func(ar chi.Router) {
		ar.Group(func(pub chi.Router) {
			if r.opts.AuthRateLimit > 0 {
				pub.Use(httprate.LimitByIP(r.opts.AuthRateLimit, r.opts.RateLimitWindow))
			}
			pub.Post("/register", authHandler.Register)
			pub.Post("/login", authHandler.Login)
			pub.Post("/refresh", authHandler.Refresh)
			pub.Post("/logout", authHandler.Logout)
		})

		ar.Group(func(pr chi.Router) {
			pr.Use(authenticate.Handle)
			pr.Get("/me", authHandler.Me)
			pr.Put("/password", authHandler.ChangePassword)
			pr.Put("/public-key", authHandler.SetPublicKey)
		})
	})

	mux.Group(func(pr chi.Router) {
		pr.Use(authenticate.Handle)

		pr.Route("/friend", func(fr chi.Router) {
			fr.Post("/request", friendHandler.SendRequest)
			fr.Post("/accept", friendHandler.AcceptRequest)
			fr.Get("/list", friendHandler.ListFriends)
			fr.Get("/requests", friendHandler.ListRequests)
		})

		connections := func(cr chi.Router) {
			cr.Get("/", connectionHandler.List)
			cr.Post("/invite", connectionHandler.Invite)
			cr.Post("/accept/{token}", connectionHandler.Accept)
		}
		pr.Route("/connections", connections)
		pr.Route("/api/connections", connections)

		pr.Route("/notepad", func(nr chi.Router) {
			nr.Post("/create-or-join", notepadHandler.CreateOrJoin)
			nr.Post("/send", notepadHandler.SendMessage)
			nr.Get("/{notepadId}/messages", notepadHandler.ListMessages)
		})

		pr.Route("/api/notes", func(nr chi.Router) {
			nr.Get("/{userId}", noteHandler.List)
			nr.Post("/{userId}", noteHandler.Send)
		})
	})

	return mux
}

func (r *Router) healthz(w http.ResponseWriter, req *http.Request) {
	if r.opts.HealthCheck != nil {
		if err := r.opts.HealthCheck(req.Context()); err != nil {
			r.logger.Error("health check failed", "error", err.Error())
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
