package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonyprachine123/test-2/internal/auth"
	"github.com/jonyprachine123/test-2/internal/handler"
	"github.com/jonyprachine123/test-2/internal/infrastructure"
	"github.com/jonyprachine123/test-2/internal/logger"
	"github.com/jonyprachine123/test-2/internal/service"
	"github.com/jonyprachine123/test-2/internal/upload"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := infrastructure.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return err
	}
	defer closeLog.Close()

	production := cfg.Environment == infrastructure.EnvProduction
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize storage
	st, err := infrastructure.OpenStore(cfg.Database, logger.WithComponent(log, "database"), !production)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if cfg.Database.Seed {
		seedManager := infrastructure.NewSeedDataManager(st, logger.WithComponent(log, "seed"))
		if err := seedManager.SeedAll(context.Background()); err != nil {
			return fmt.Errorf("failed to setup seed data: %w", err)
		}
	}

	// Image storage
	var (
		images    upload.ImageStore
		uploadDir string
	)
	if cfg.Upload.Mode == "inline" {
		images = upload.NewInlineStore(cfg.Upload.MaxSize)
	} else {
		disk, err := upload.NewDiskStore(cfg.Upload.Dir, cfg.Server.PublicBaseURL, cfg.Upload.MaxSize)
		if err != nil {
			return err
		}
		images, uploadDir = disk, disk.Dir()
	}

	// Initialize services
	deps := handler.Dependencies{
		Products: service.NewProductService(st, images, log),
		Orders:   service.NewOrderService(st, st, log),
		Banners:  service.NewBannerService(st, images, log),
		Reviews:  service.NewReviewService(st, log),
		Storage:  st,
		Log:      log,
	}

	if cfg.Auth.Enabled {
		accounts := make([]auth.Account, 0, len(cfg.Auth.Admins))
		for _, a := range cfg.Auth.Admins {
			accounts = append(accounts, auth.Account{Username: a.Username, Password: a.Password, Role: a.Role})
		}
		authService, err := auth.NewService(auth.Config{
			Secret:   []byte(cfg.Auth.JWTSecret),
			TokenTTL: cfg.Auth.TokenTTL,
			Accounts: accounts,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize authentication service: %w", err)
		}
		authzService, err := service.NewAuthorizationService()
		if err != nil {
			return fmt.Errorf("failed to initialize authorization service: %w", err)
		}
		deps.Auth = authService
		deps.Authz = authzService
	} else {
		log.Warn("Admin authentication is disabled; admin routes are open")
	}

	router := handler.NewRouter(handler.RouterConfig{
		UploadDir:     uploadDir,
		CORSOrigin:    cfg.Server.CORSOrigin,
		MaxUploadSize: cfg.Upload.MaxSize,
	}, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting storefront API",
			slog.String("port", cfg.Server.Port),
			slog.String("environment", cfg.Environment),
			slog.String("storage", st.Name()),
			slog.String("uploads", cfg.Upload.Mode),
			slog.Bool("auth", cfg.Auth.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
