package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/encuestas/api/internal/adapters/handler/http"
	repo "github.com/encuestas/api/internal/adapters/repository/postgres"
	"github.com/encuestas/api/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	Container testcontainers.Container
	DB        *sql.DB
	Server    *httptest.Server
	Client    *stdhttp.Client
}

// setupTestApp starts a disposable postgres container, migrates it and
// serves the full API against it.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	// the schema comes up through the embedded production migrator
	require.NoError(t, repo.Migrate(db))

	surveyRepo := repo.NewSurveyRepository(db)
	questionRepo := repo.NewQuestionRepository(db)
	answerRepo := repo.NewAnswerRepository(db)
	reportRepo := repo.NewReportRepository(db)
	userRepo := repo.NewUserRepository(db)

	surveyService := services.NewSurveyService(surveyRepo)
	questionService := services.NewQuestionService(surveyRepo, questionRepo)
	submissionService := services.NewSubmissionService(surveyRepo, questionRepo, answerRepo)
	reportService := services.NewReportService(surveyRepo, questionRepo, userRepo, reportRepo)
	userService := services.NewUserService(userRepo)

	handler := http.NewHandler(
		[]byte(testJWTSecret),
		http.NewSurveyHandler(surveyService),
		http.NewQuestionHandler(questionService),
		http.NewAnswerHandler(submissionService),
		http.NewReportHandler(reportService, surveyService),
		http.NewUserHandler(userService),
	)

	server := httptest.NewServer(handler)

	return &TestApp{
		Container: container,
		DB:        db,
		Server:    server,
		Client:    server.Client(),
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	require.NoError(t, app.DB.Close())
	require.NoError(t, app.Container.Terminate(context.Background()))
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func createUser(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	name := fmt.Sprintf("User %s", userID)
	_, err := db.Exec("INSERT INTO users (id, email, name) VALUES ($1, $2, $3)", userID, email, name)
	require.NoError(t, err)
	return userID
}

func createUserAndToken(t *testing.T, db *sql.DB) string {
	t.Helper()

	userID := createUser(t, db)
	email := fmt.Sprintf("user-%s@example.com", userID)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signedToken
}

// doRequest sends a JSON request with the access token cookie set and
// returns the raw response.
func doRequest(t *testing.T, app *TestApp, method, path, token string, body any) *stdhttp.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := stdhttp.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&stdhttp.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *stdhttp.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
