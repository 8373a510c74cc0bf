package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

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
		projectID = flag.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID (or set GCP_PROJECT)")
		datasetID = flag.String("dataset", envOr("BQ_DATASET", "sipplanner"), "BigQuery dataset ID (or set BQ_DATASET)")
		model     = flag.String("model", os.Getenv("GEMINI_MODEL"), "Gemini model for text extraction (or set GEMINI_MODEL)")
		workers   = flag.Int("workers", 4, "Number of parse workers")
	)
	flag.Parse()

	log := logger.New("worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	svc := pipeline.NewService(repo, storage, extract.NewGeminiExtractor(*model), log)

	// In production this would be replaced with Cloud Tasks or Pub/Sub.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	log.Info().Int("workers", *workers).Msg("Starting worker service")

	handler := func(ctx context.Context, job *jobs.ParseStatementJob) error {
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

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	log.Info().Msg("Worker service started, waiting for jobs...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	log.Info().Msg("Worker service exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
