package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/velorent/velorent-auth/internal/api/rest"
	"github.com/velorent/velorent-auth/internal/config"
	"github.com/velorent/velorent-auth/internal/logger"
	"github.com/velorent/velorent-auth/internal/mail"
	"github.com/velorent/velorent-auth/internal/model"
	"github.com/velorent/velorent-auth/internal/repository/postgres"
	"github.com/velorent/velorent-auth/internal/server"
	"github.com/velorent/velorent-auth/internal/service"
	"github.com/velorent/velorent-auth/internal/token"
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
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	userInfoRepo := postgres.NewUserInfoRepository(db)
	twoFactorRepo := postgres.NewTwoFactorCodeRepository(db)
	resetCodeRepo := postgres.NewPasswordResetCodeRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.SecretKey, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	authService := service.NewAuth(userRepo, userInfoRepo, twoFactorRepo, tokenManager, mailer, logger)
	accountService := service.NewAccount(userRepo, userInfoRepo, mailer, logger)
	resetService := service.NewPasswordReset(userRepo, resetCodeRepo, mailer, cfg.FrontendURL, cfg.Codes.ResetTTL(), logger)

	handler := rest.NewHandler(authService, accountService, resetService, db, cfg.JWT.RefreshTTL(), cfg.FrontendURL, logger)
	httpServer := server.NewHTTPServer(handler.Routes(), fmt.Sprintf(":%s", cfg.HTTP.Port))

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
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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
