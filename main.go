package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"propscout/agent"
	"propscout/config"
	"propscout/httputil"
	"propscout/logging"
	"propscout/models"
	"propscout/scheduler"
	"propscout/server"
	"propscout/services"
	"propscout/storage"
	"propscout/workers"
)

var (
	city     = flag.String("city", "", "City to search in")
	maxPrice = flag.Float64("max-price", 0, "Maximum price in Crores")
	category = flag.String("category", models.CategoryResidential, "Property category (Residential or Commercial)")
	propType = flag.String("type", models.TypeFlat, "Property type (Flat or Individual House)")
	trends   = flag.Bool("trends", false, "Also fetch location price trends")
	watchAdd = flag.Bool("watch-add", false, "Save the query as a scheduled watch instead of running it")
	serve    = flag.Bool("serve", false, "Run the HTTP API and watch scheduler")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile, err := logging.Setup("propscout.log")
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting propscout...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	log.Printf("Model: %s, %d listing sources", cfg.Model.ID, len(cfg.Sources.PropertyTemplates))

	clients := httputil.NewClients(&cfg.Firecrawl)

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}
	defer store.Close()
	log.Printf("SQLite database: %s", cfg.DBPath)

	ctx := context.Background()

	propertyAgent := agent.New(cfg, clients)
	search := services.NewSearchService(propertyAgent, store)

	if cfg.DBURL != "" {
		pgStore, err := storage.NewPostgresStore(ctx, cfg.DBURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pgStore.Close()
		search.SetPostgres(pgStore)
		log.Println("Connected to Postgres, run history will be mirrored")
	}

	if *serve {
		runServer(ctx, cfg, store, search)
		return
	}

	if *city == "" {
		flag.Usage()
		os.Exit(2)
	}

	query := models.SearchQuery{
		City:     *city,
		MaxPrice: *maxPrice,
		Category: *category,
		Type:     *propType,
	}

	if *watchAdd {
		watch, err := search.AddWatch(query)
		if err != nil {
			log.Fatalf("Failed to add watch: %v", err)
		}
		log.Printf("Watch added: %s (%s)", watch.ID, watch.Query.City)
		return
	}

	run, err := search.Search(ctx, query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	fmt.Println(run.Digest)
	log.Printf("Search run %s: %s, %d records", run.ID, run.Status, run.RecordsFound)

	if *trends {
		trendRun, err := search.Trends(ctx, *city)
		if err != nil {
			log.Fatalf("Trend analysis failed: %v", err)
		}
		fmt.Println(trendRun.Digest)
	}
}

func runServer(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore, search *services.SearchService) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(cfg, search)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	retention := workers.NewRetentionWorker(store, cfg.Retention.MaxAge)
	go retention.Run(ctx, cfg.Retention.Interval)
	log.Println("Retention worker started")

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.New(search).Router(),
	}

	go func() {
		log.Printf("HTTP API listening on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()
	srv.Shutdown(ctx)
	log.Println("Goodbye!")
}
