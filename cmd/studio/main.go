package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-studio/internal/adapter"
	"asset-studio/internal/backend"
	"asset-studio/internal/balancer"
	"asset-studio/internal/config"
	"asset-studio/internal/gallery"
	"asset-studio/internal/page"
	"asset-studio/internal/studio"
	"asset-studio/internal/tui"
)

func main() {
	ui := flag.String("ui", "web", "Surface to run: web or tui")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool := balancer.NewEndpointPool()
	for _, endpoint := range cfg.BackendURLs {
		client, err := backend.NewClient(endpoint, backend.Options{
			Profile:        cfg.ClientProfile,
			TimeoutSeconds: cfg.TimeoutSeconds,
			UserID:         cfg.UserID,
		})
		if err != nil {
			log.Fatalf("Failed to create backend client for %s: %v", endpoint, err)
		}
		pool.Add(client, endpoint)
		log.Printf("Backend endpoint: %s", endpoint)
	}

	p := page.New()

	var opts []studio.Option
	var saves tui.SaveReporter
	if cfg.OutputDir != "" {
		g, err := gallery.New(cfg.OutputDir)
		if err != nil {
			log.Fatalf("Failed to open output directory: %v", err)
		}
		opts = append(opts, studio.WithRecorder(g))
		saves = g
		log.Printf("Saving generated images to %s", cfg.OutputDir)
	}

	ctrl, err := studio.NewController(pool, p.Handles(), opts...)
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *ui {
	case "tui":
		if err := tui.Run(ctx, ctrl, p, saves, cfg.LogFile); err != nil {
			log.Fatalf("Terminal UI failed: %v", err)
		}
	case "web":
		if err := serveWeb(ctx, cfg, ctrl, p); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	default:
		log.Fatalf("Unknown -ui %q, expected web or tui", *ui)
	}
}

func serveWeb(ctx context.Context, cfg *config.Config, ctrl *studio.Controller, p *page.Page) error {
	r, err := adapter.NewRouter(ctrl, p, cfg.AccessKey)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Studio running on http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
