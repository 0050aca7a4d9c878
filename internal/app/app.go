package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	_ "resetd/docs"
	"resetd/internal/config"
	"resetd/internal/handlers"
	"resetd/internal/logging"
	"resetd/internal/middleware"
	"resetd/internal/repositories"
	"resetd/internal/routes"
	"resetd/internal/services"
)

const shutdownTimeout = 10 * time.Second

// Store is an open database handle shared by the server and the CLI.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// OpenStore connects to MongoDB, verifies it with a ping and ensures indexes.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, err := repositories.Connect(ctx, cfg.Database.URL, cfg.Database.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Database.Name)
	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logging.From(ctx).Info("connected to mongodb", zap.String("database", cfg.Database.Name))
	return &Store{Client: client, DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return repositories.Ping(ctx, s.Client)
}

func (s *Store) Close() {
	if err := s.Client.Disconnect(context.Background()); err != nil {
		logging.From(context.Background()).Warn("disconnect mongodb", zap.Error(err))
	}
}

// NewRouter builds the gin engine with every route bound to store.
func NewRouter(cfg *config.Config, store *Store) *gin.Engine {
	// === Repos ===
	userRepo := repositories.NewUserRepository(store.DB)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo, authService)
	resetService := services.NewPasswordResetService(userRepo, emailService, authService, services.ResetOptions{
		BaseURL: cfg.Frontend.BaseURL,
		TTL:     cfg.Reset.TokenTTL,
	})

	// === Handlers ===
	frontendHandler := handlers.NewFrontendHandler(cfg.Frontend.StaticDir)
	userHandler := handlers.NewUserHandler(userService)
	resetHandler := handlers.NewPasswordResetHandler(resetService, frontendHandler)
	healthHandler := handlers.NewHealthHandler(store)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(middleware.CORS())

	return routes.SetupRoutes(router, userHandler, resetHandler, frontendHandler, healthHandler)
}

// Run connects to the database before accepting traffic and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: NewRouter(cfg, store),
	}

	errCh := make(chan error, 1)
	go func() {
		logging.From(ctx).Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.From(ctx).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
