package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/encuestas/api/internal/adapters/repository/postgres"
	"github.com/encuestas/api/internal/core/services"
	"github.com/encuestas/api/internal/pkg/logx"
)

// Batch job: refreshes the materialized per-option selection counts for
// every survey. Meant to run on a schedule.
func main() {
	if err := godotenv.Load(); err != nil {
		logx.Infof("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logx.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logx.Fatal(err)
	}

	surveyRepo := postgres.NewSurveyRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	summaryService := services.NewSummaryService(surveyRepo, resultRepo)

	// Bounded run time so a stuck database does not hang the scheduler.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logx.Info("Starting result summarization job...")

	if err := summaryService.SummarizeAll(ctx); err != nil {
		logx.Fatalf("Error summarizing results: %v", err)
	}

	logx.Info("Result summarization completed successfully.")
}
