package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/olyvenbayani/guestbook/config"
	"github.com/olyvenbayani/guestbook/handlers"
	"github.com/olyvenbayani/guestbook/nats_service"
	"github.com/olyvenbayani/guestbook/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run owns the full lifecycle so deferred cleanup executes before the
// process exits with a status code.
func run() error {
	// --- Configuration & Logger ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	// --- Message Log ---
	var messageLog storage.Log
	switch cfg.StorageBackend {
	case config.BackendBadger:
		messageLog, err = storage.NewBadgerLog(cfg.BadgerPath)
		if err != nil {
			return fmt.Errorf("failed to open message log: %w", err)
		}
	default:
		messageLog = storage.NewFileLog(cfg.GuestbookPath)
	}
	defer func() {
		if err := messageLog.Close(); err != nil {
			log.Error("error closing message log", "error", err)
		}
	}()
	log.Info("message log ready", "backend", cfg.StorageBackend)

	// --- Entry Feed (optional) ---
	var natsSvc *nats_service.NatsService
	if cfg.NatsURL != "" {
		natsSvc, err = nats_service.NewNatsService(cfg.NatsURL, log)
		if err != nil {
			return fmt.Errorf("failed to initialize NATS service: %w", err)
		}
		defer natsSvc.Close()
		log.Info("entry feed enabled", "url", cfg.NatsURL)
	}

	var feed handlers.EntryPublisher
	if natsSvc != nil {
		feed = natsSvc
	}
	guestbook := handlers.NewGuestbook(messageLog, log, feed, cfg.MaxMessageLength)

	// --- Fiber App & Routes ---
	app := fiber.New()
	app.Use(logger.New()) // Basic request logging

	app.Get("/", guestbook.Index)
	app.Post("/", guestbook.Sign)
	app.Get("/healthz", guestbook.Health)

	if natsSvc != nil {
		app.Use("/live", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				c.Locals("allowed", true)
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/live", websocket.New(func(c *websocket.Conn) {
			handlers.HandleLive(c, natsSvc, log)
		}))
	}

	// --- Start Server ---
	errChan := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.ListenAddr)
		if err := app.Listen(cfg.ListenAddr); err != nil {
			errChan <- fmt.Errorf("server failed: %w", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errChan:
		return err
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error shutting down server", "error", err)
	}
	log.Info("server gracefully stopped")
	return nil
}
