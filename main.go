// main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/config"
	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/queue"
	"go-storefront/repository"
	"go-storefront/routes"
	"go-storefront/services"
	"go-storefront/session"
	"go-storefront/utils"
	"go-storefront/views"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(utils.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
		File:   cfg.LogFile,
	})
	if err != nil {
		slog.Error("Error configuring logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := client.Database(cfg.MongoDB)

	products := repository.NewProductRepository(db)
	users := repository.NewUserRepository(db, cfg.BcryptCost)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Session store
	var store session.Store
	switch cfg.SessionStore {
	case "memory":
		store = session.NewMemoryStore()
	default:
		rdb, err := utils.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, "session")
	}
	sessions := session.NewManager(store, []byte(cfg.SessionSecret), cfg.SessionTTL, cfg.Env == "production")

	// Initialize EmailService
	mailer, err := utils.NewMailer(cfg.EmailProvider, cfg.PostmarkAPIToken, cfg.SendGridAPIKey, cfg.EmailSender)
	if err != nil {
		return err
	}
	emailService := utils.NewEmailService(mailer)

	// Welcome email retries
	var retry services.NotificationQueue
	if cfg.RabbitMQURL != "" {
		publisher, err := queue.NewPublisher(cfg.RabbitMQURL, cfg.NotifyQueue)
		if err != nil {
			return err
		}
		defer publisher.Close()
		retry = publisher

		consumer := queue.NewConsumer(cfg.RabbitMQURL, cfg.NotifyQueue, emailService, 5, 30*time.Second)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Notification consumer stopped", "error", err)
			}
		}()
	} else {
		slog.Warn("RABBITMQ_URL not set; failed welcome emails will not be retried")
	}

	images, err := utils.NewImageStore(cfg.UploadDir)
	if err != nil {
		return err
	}
	renderer, err := views.New()
	if err != nil {
		return err
	}

	cartService := services.NewCartService(products, emailService)
	accountService := services.NewAccountService(users, emailService, retry)

	// Initialize controllers
	c := routes.Controllers{
		General:  controllers.NewGeneralController(products, renderer),
		User:     controllers.NewUserController(accountService, sessions, renderer),
		Cart:     controllers.NewCartController(cartService, sessions, renderer),
		Order:    controllers.NewOrderController(cartService, sessions, renderer),
		Product:  controllers.NewProductController(products, images, renderer, cfg.MaxUploadBytes),
		LoadData: controllers.NewLoadDataController(products, renderer),
	}
	guard := middleware.NewGuard(cfg.AuthzDenyStatus, controllers.Unauthorized(renderer))

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, guard, c, cfg.UploadDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.Handler(router, sessions),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server is running", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
