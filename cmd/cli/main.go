package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityamisra/sip-planner/internal/analysis"
	"github.com/adityamisra/sip-planner/internal/extract"
	"github.com/adityamisra/sip-planner/internal/gcsstore"
	infraBQ "github.com/adityamisra/sip-planner/internal/infra/bigquery"
	"github.com/adityamisra/sip-planner/internal/logger"
	"github.com/adityamisra/sip-planner/internal/pipeline"
	"github.com/adityamisra/sip-planner/internal/sip"
	"github.com/adityamisra/sip-planner/internal/statement"
)

func main() {
	log := logger.New("cli")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		runIngest(log)
	case "upload":
		runUpload(log)
	case "analyze":
		runAnalyze(log)
	case "sip":
		runSIP(log)
	case "goal":
		runGoal(log)
	case "projection":
		runProjection(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("SIP Planner CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  ingest      Parse and ingest a bank statement PDF from GCS")
	fmt.Println("  upload      Upload a statement PDF to GCS")
	fmt.Println("  analyze     Parse a local statement text file and print the analysis")
	fmt.Println("  sip         Calculate the three investment plans for a monthly surplus")
	fmt.Println("  goal        Solve for the monthly contribution to reach a goal amount")
	fmt.Println("  projection  Print the month-by-month growth projection")
	fmt.Println("  help        Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runIngest(log zerolog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	gcsURI := fs.String("gcs-uri", "", "GCS URI of the statement PDF")
	projectID := fs.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID")
	datasetID := fs.String("dataset", envOr("BQ_DATASET", "sipplanner"), "BigQuery dataset ID")
	model := fs.String("model", os.Getenv("GEMINI_MODEL"), "Gemini model for text extraction")
	fs.Parse(os.Args[2:])

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

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

	log.Info().Str("gcs_uri", *gcsURI).Msg("Starting ingestion")

	statementID, err := svc.IngestStatementFromGCS(ctx, *gcsURI)
	if err != nil {
		log.Fatal().Err(err).Str("statement_id", statementID).Msg("Ingestion failed")
	}

	fmt.Printf("Ingestion completed. Statement ID: %s\n", statementID)
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", "", "GCS bucket name")
	objectName := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local PDF file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}

	if *objectName == "" {
		*objectName = filepath.Base(*filePath)
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open file")
	}
	defer f.Close()

	storage, err := gcsstore.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create GCS client")
	}
	defer storage.Close()

	gcsURI, err := storage.Upload(ctx, *bucketName, *objectName, "application/pdf", f)
	if err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to %s\n", *filePath, gcsURI)
}

// runAnalyze parses statement text locally, without GCP, and prints the full
// analysis. With -sample it runs on the built-in sample statement.
func runAnalyze(log zerolog.Logger) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	filePath := fs.String("file", "", "Path to a statement text file (extracted text layer)")
	useSample := fs.Bool("sample", false, "Analyze the built-in sample statement")
	fs.Parse(os.Args[2:])

	var rawText string
	switch {
	case *useSample:
		rawText = statement.SampleStatement
	case *filePath != "":
		data, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read file")
		}
		rawText = string(data)
	default:
		log.Fatal().Msg("Usage: cli analyze -file PATH or cli analyze -sample")
	}

	txs := statement.Parse(rawText)
	if len(txs) == 0 {
		log.Fatal().Msg("No transactions found in statement text")
	}

	start, end := txPeriod(txs)
	a := analysis.Analyze(txs, start, end)

	printJSON(map[string]interface{}{
		"transactions":     txs,
		"analysis":         a,
		"insights":         analysis.SpendingInsights(a),
		"unusual_spending": analysis.DetectUnusualSpending(txs),
		"monthly_trend":    analysis.MonthlyTrend(txs),
	})
}

func runSIP(log zerolog.Logger) {
	fs := flag.NewFlagSet("sip", flag.ExitOnError)
	surplus := fs.Float64("surplus", 0, "Monthly surplus available to invest")
	rate := fs.Float64("rate", -1, "Expected annual return rate in percent (plan defaults when omitted)")
	fs.Parse(os.Args[2:])

	var customRate *float64
	if *rate >= 0 {
		customRate = rate
	}

	validation := sip.ValidateParams(sip.Params{
		MonthlySurplus:     *surplus,
		ExpectedReturnRate: customRate,
	})
	if !validation.Valid {
		printJSON(validation)
		os.Exit(1)
	}
	for _, warning := range validation.Warnings {
		log.Warn().Msg(warning)
	}

	plans, err := sip.CalculatePlans(*surplus, customRate)
	if err != nil {
		log.Fatal().Err(err).Msg("Calculation failed")
	}
	printJSON(plans)
}

func runGoal(log zerolog.Logger) {
	fs := flag.NewFlagSet("goal", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "Goal amount to reach")
	years := fs.Int("years", 0, "Investment duration in years")
	rate := fs.Float64("rate", 12, "Expected annual return rate in percent")
	fs.Parse(os.Args[2:])

	if *amount <= 0 || *years <= 0 {
		log.Fatal().Msg("Usage: cli goal -amount N -years N [-rate N]")
	}

	printJSON(sip.CalculateForGoal(*amount, *years, *rate))
}

func runProjection(log zerolog.Logger) {
	fs := flag.NewFlagSet("projection", flag.ExitOnError)
	monthlySIP := fs.Float64("monthly-sip", 0, "Monthly contribution")
	months := fs.Int("months", 0, "Duration in months")
	rate := fs.Float64("rate", 12, "Expected annual return rate in percent")
	fs.Parse(os.Args[2:])

	if *monthlySIP <= 0 || *months <= 0 {
		log.Fatal().Msg("Usage: cli projection -monthly-sip N -months N [-rate N]")
	}

	printJSON(sip.Projection(*monthlySIP, *months, *rate/100/12))
}

// txPeriod derives the analysis window from the earliest and latest
// transaction dates, falling back to the current month.
func txPeriod(txs []statement.Transaction) (time.Time, time.Time) {
	var start, end time.Time
	for _, tx := range txs {
		t, err := time.Parse("2006-01-02", statement.NormalizeDate(tx.Date))
		if err != nil {
			continue
		}
		if start.IsZero() || t.Before(start) {
			start = t
		}
		if end.IsZero() || t.After(end) {
			end = t
		}
	}
	if start.IsZero() {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	}
	return start, end
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
