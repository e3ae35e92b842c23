package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hepworks/trijet.report/internal/analysis"
	"github.com/hepworks/trijet.report/internal/dataset"
	"github.com/hepworks/trijet.report/internal/db"
	"github.com/hepworks/trijet.report/internal/hints"
	"github.com/hepworks/trijet.report/internal/version"
	"github.com/hepworks/trijet.report/internal/web"
)

var (
	devMode    = flag.Bool("dev", false, "Run in dev mode (seed a synthetic run when the database is empty)")
	listen     = flag.String("listen", ":8080", "Listen address")
	dbFile     = flag.String("db", "trijet_results.db", "Path to the results database")
	configFile = flag.String("config", "", "Optional analysis config JSON")
	hintsDir   = flag.String("hints-dir", "hints", "Directory of hint markdown files")
)

// hintsTokenEnv names the env var holding the bearer token for the
// hints routes. Unset means the hints service is disabled.
const hintsTokenEnv = "TRIJET_HINTS_TOKEN"

// seedDevRun runs a small synthetic analysis so the charts have data
// to show on a fresh database.
func seedDevRun(cfg *analysis.Config, store *db.RunStore) {
	runs, err := store.ListRuns()
	if err != nil {
		log.Printf("failed to list runs: %v", err)
		return
	}
	if len(runs) > 0 {
		return
	}
	rn := &analysis.Runner{Config: cfg, Store: store}
	out, err := rn.Run(dataset.NewSynthetic(500, 42))
	if err != nil {
		log.Printf("failed to seed dev run: %v", err)
		return
	}
	log.Printf("seeded dev run %s (%d events)", out.Run.RunID, out.Run.EventCount)
}

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	log.Printf("trijet report server %s", version.String())

	var cfg *analysis.Config
	if *configFile != "" {
		var err error
		cfg, err = analysis.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	store := db.NewRunStore(database)
	if *devMode {
		seedDevRun(cfg, store)
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		// mount the admin debugging routes (accessible only in dev mode or over Tailscale)
		database.AttachAdminRoutes(mux)

		webMux := web.NewServer(store).ServeMux()
		mux.Handle("/api/runs", webMux)
		mux.Handle("/api/runs/", webMux)
		mux.Handle("/charts/", webMux)

		hintsSrv := hints.NewServer(hints.NewCorpus(*hintsDir), os.Getenv(hintsTokenEnv))
		hintsMux := hintsSrv.ServeMux()
		mux.Handle("/api/hints", hintsMux)
		mux.Handle("/api/hints/", hintsMux)

		mux.Handle("/", NewServer(store).ServeMux())

		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("got request %q", r.URL.Path)
			mux.ServeHTTP(w, r)
		})

		server := &http.Server{
			Addr:    *listen,
			Handler: h,
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
