package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adityamisra/sip-planner/internal/api/handlers"
	"github.com/adityamisra/sip-planner/internal/api/middleware"
	"github.com/adityamisra/sip-planner/internal/cache"
	"github.com/adityamisra/sip-planner/internal/extract"
	"github.com/adityamisra/sip-planner/internal/gcsstore"
	infraBQ "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/jobs"
	"github.com/adityamisra/sip-planner/internal/jobs/inmemory"
	"github.com/adityamisra/sip-planner/internal/logger"
	"github.com/adityamisra/sip-planner/internal/pipeline"
)

func main() {
	var (
		port      = flag.String("port", "8080", "HTTP server port")
		bucket    = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for statement uploads (or set GCS_BUCKET)")
		projectID = flag.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID (or set GCP_PROJECT)")
		datasetID = flag.String("dataset", envOr("BQ_DATASET", "sipplanner"), "BigQuery dataset ID (or set BQ_DATASET)")
		model     = flag.String("model", os.Getenv("GEMINI_MODEL"), "Gemini model for text extraction (or set GEMINI_MODEL)")
		workers   = flag.Int("workers", 2, "Number of parse workers")
	)
	flag.Parse()

	log := logger.New("api")

	if *bucket == "" {
		log.Warn().Msg("No GCS bucket configured - statement uploads will fail")
	}

	ctx := context.Background()

	repo, err := infraBQ.NewClient(ctx, *projectID, *datasetID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery client")
	}
	defer repo.Close()

	storage, err := gcsstore.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create GCS client")
	}
	defer storage.Close()

	extractor := extract.NewGeminiExtractor(*model)
	svc := pipeline.NewService(repo, storage, extractor, log)

	// Plan results are cached in Redis when available, in memory otherwise.
	var planCache cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisCache := cache.NewRedis(addr)
		defer redisCache.Close()
		planCache = redisCache
		log.Info().Str("addr", addr).Msg("Using Redis plan cache")
	} else {
		planCache = cache.NewMemory()
		log.Info().Msg("Using in-memory plan cache")
	}

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.ParseStatementJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("statement_id", job.StatementID).
			Str("gcs_uri", job.GCSURI).
			Msg("Processing parse job")

		parsingRunID, err := svc.ProcessStatement(ctx, job.StatementID, job.GCSURI)
		job.ParsingRunID = parsingRunID
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Str("statement_id", job.StatementID).
				Msg("Pipeline execution failed")
			return err
		}

		log.Info().
			Str("job_id", job.JobID).
			Str("statement_id", job.StatementID).
			Msg("Pipeline execution completed")
		return nil
	}

	go func() {
		log.Info().Int("workers", *workers).Msg("Starting parse workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Parse workers stopped with error")
		}
	}()

	statementsHandler := handlers.NewStatementsHandler(repo, storage, jobQueue, *bucket, log)
	transactionsHandler := handlers.NewTransactionsHandler(repo, log)
	analysisHandler := handlers.NewAnalysisHandler(repo, log)
	sipHandler := handlers.NewSIPHandler(planCache, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/statements", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			statementsHandler.ListStatements(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/statements/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			statementsHandler.UploadStatement(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/statements/parse", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			statementsHandler.EnqueueParsing(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analysis", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analysisHandler.GetAnalysis(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/sip/plans", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sipHandler.CalculatePlans(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/sip/goal", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sipHandler.CalculateGoal(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/sip/projection", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			sipHandler.GetProjection(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	limiter := middleware.NewRateLimiter(60, time.Minute)
	defer limiter.Stop()

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(
					middleware.RateLimit(limiter, log)(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
