package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/encuestas/api/internal/adapters/repository/postgres"
	"github.com/encuestas/api/internal/pkg/logx"
)

// Applies every pending embedded migration. The server does this on
// startup too; this command exists for running migrations out of band.
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

	if err := postgres.Migrate(db); err != nil {
		logx.Fatalf("migration failed: %v", err)
	}

	logx.Info("Migrations applied successfully.")
}
