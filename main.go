package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaronzipp/midnight-whispers/internal/config"
	"github.com/aaronzipp/midnight-whispers/internal/game"
	"github.com/aaronzipp/midnight-whispers/internal/handlers"
	"github.com/aaronzipp/midnight-whispers/internal/narrator"
	"github.com/aaronzipp/midnight-whispers/internal/store"
	"github.com/aaronzipp/midnight-whispers/web"
)

const (
	janitorInterval = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	roster, err := config.LoadRoster(cfg.RosterPath)
	if err != nil {
		log.Fatal("Failed to load roster:", err)
	}

	// Parse templates
	templates, err := web.Templates()
	if err != nil {
		log.Fatal("Failed to parse templates:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gm, err := narrator.New(ctx, narrator.Config{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Language:   cfg.Language,
	})
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}
	defer gm.Close()

	games := store.NewGameStore()
	app := &handlers.Context{
		Store:     games,
		Templates: templates,
		Roster:    roster,
		Base:      ctx,
	}
	app.Engine = game.NewEngine(game.EngineConfig{
		Narrator:    gm,
		CallTimeout: cfg.CallTimeout,
		SkipImages:  cfg.SkipImages,
		Notify:      app.Notify,
	})

	janitorStop := make(chan struct{})
	go games.RunJanitor(cfg.GameTTL, janitorInterval, janitorStop, app.Forget)

	mux := http.NewServeMux()
	mux.HandleFunc("/", app.HandleIndex)
	mux.HandleFunc("/new", app.HandleNewGame)
	mux.HandleFunc("/game/", app.HandleGameMux)
	mux.HandleFunc("/sse/", app.HandleSSE)
	mux.HandleFunc("/healthz", app.HandleHealth)

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		log.Printf("Server starting on %s (text=%s image=%s images=%v)", cfg.Addr, cfg.TextModel, cfg.ImageModel, !cfg.SkipImages)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")
	close(janitorStop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	app.Wait()
}
