package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	reqctx "github.com/dtroode/lovebomb-server/internal/api/http/context"
	"github.com/dtroode/lovebomb-server/internal/api/http/router"
	httpServer "github.com/dtroode/lovebomb-server/internal/api/http/server"
	"github.com/dtroode/lovebomb-server/internal/config"
	"github.com/dtroode/lovebomb-server/internal/hasher"
	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/mail"
	"github.com/dtroode/lovebomb-server/internal/metrics"
	"github.com/dtroode/lovebomb-server/internal/model"
	"github.com/dtroode/lovebomb-server/internal/repository/postgres"
	"github.com/dtroode/lovebomb-server/internal/server"
	"github.com/dtroode/lovebomb-server/internal/service"
	"github.com/dtroode/lovebomb-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	gateMode, err := service.ParseGateMode(cfg.NotesLedger)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	metrics.MustRegister()

	userRepo := postgres.NewUserRepository(db)
	relationshipRepo := postgres.NewRelationshipRepository(db)
	notepadRepo := postgres.NewNotepadRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	noteRepo := postgres.NewNoteRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret,
		token.WithAccessTTL(cfg.JWT.AccessTTL),
		token.WithRefreshTTL(cfg.JWT.RefreshTTL),
		token.WithInviteTTL(cfg.Invite.TTL),
	)
	passwordHasher := hasher.NewBcrypt(cfg.Auth.BcryptCost)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, logger).WithRefreshTTL(cfg.JWT.RefreshTTL)
	authService := service.NewAuth(userRepo, passwordHasher, tokenService, logger)
	friendService := service.NewFriend(userRepo, relationshipRepo, db, logger)
	connectionService := service.NewConnection(
		userRepo,
		relationshipRepo,
		inviteRepo,
		tokenManager,
		newMailer(cfg.Mail, logger),
		db,
		service.ConnectionConfig{ClientURL: cfg.Invite.ClientURL, SingleUseInvites: cfg.Invite.SingleUse},
		logger,
	)
	notepadService := service.NewNotepad(userRepo, notepadRepo, messageRepo, passwordHasher, logger)
	noteService := service.NewNote(noteRepo, service.NewGate(relationshipRepo, gateMode), logger)

	r := router.New(router.Services{
		Auth:       authService,
		Friend:     friendService,
		Connection: connectionService,
		Notepad:    notepadService,
		Note:       noteService,
		Tokens:     tokenService,
	}, router.Options{
		CORSOrigins:       cfg.CORS.Origins,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		RateLimitRequests: cfg.RateLimit.Requests,
		AuthRateLimit:     cfg.RateLimit.AuthRequests,
		RateLimitWindow:   cfg.RateLimit.Window,
		HealthCheck:       db.Ping,
	}, reqctx.NewManager(), logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// newMailer returns an SMTP mailer guarded by a circuit breaker, or a mailer
// that only logs invites when no SMTP host is configured.
func newMailer(cfg config.Mail, logger *logger.Logger) model.Mailer {
	if cfg.Host == "" {
		logger.Warn("SMTP host is not configured, invite emails will only be logged")
		return mail.NewLogMailer(logger)
	}

	smtpMailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		From:     cfg.From,
		UseTLS:   cfg.UseTLS,
		Timeout:  cfg.Timeout,
	})

	return mail.NewBreakerMailer(smtpMailer, mail.BreakerConfig{
		FailureThreshold: cfg.FailureThreshold,
		OpenTimeout:      cfg.OpenTimeout,
	}, logger)
}
