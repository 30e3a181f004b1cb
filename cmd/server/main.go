package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/encuestas/api/internal/adapters/handler/http"
	"github.com/encuestas/api/internal/adapters/repository/postgres"
	"github.com/encuestas/api/internal/core/services"
	"github.com/encuestas/api/internal/pkg/logx"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logx.Infof("No .env file found")
	}
	logx.SetDebug(os.Getenv("DEBUG") == "true")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", dbConnString())
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

	surveyRepo := postgres.NewSurveyRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	answerRepo := postgres.NewAnswerRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	userRepo := postgres.NewUserRepository(db)

	surveyService := services.NewSurveyService(surveyRepo)
	questionService := services.NewQuestionService(surveyRepo, questionRepo)
	submissionService := services.NewSubmissionService(surveyRepo, questionRepo, answerRepo)
	reportService := services.NewReportService(surveyRepo, questionRepo, userRepo, reportRepo)
	userService := services.NewUserService(userRepo)

	handler := http.NewHandler(
		[]byte(jwtSecret),
		http.NewSurveyHandler(surveyService),
		http.NewQuestionHandler(questionService),
		http.NewAnswerHandler(submissionService),
		http.NewReportHandler(reportService, surveyService),
		http.NewUserHandler(userService),
	)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logx.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logx.Fatal(err)
		}
	}()

	<-ctx.Done()
	logx.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err)
	}
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"))
}
