//go:build integration

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/parqueo-gt/parqueo/internal/config"
	"github.com/parqueo-gt/parqueo/internal/database"
)

var (
	testDB  *pgxpool.Pool
	testCfg *config.Config
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "parqueo_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Printf("Failed to start container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}()

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/parqueo_test?sslmode=disable", host, port.Port())

	// Run migrations over a database/sql connection
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	migrator, err := database.NewMigrator(sqlDB, "parqueo_test")
	if err != nil {
		fmt.Printf("Failed to create migrator: %v\n", err)
		os.Exit(1)
	}
	if err := migrator.Up(); err != nil {
		fmt.Printf("Failed to run migrations: %v\n", err)
		os.Exit(1)
	}
	_ = migrator.Close()

	testDB, err = pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer testDB.Close()

	testCfg = &config.Config{
		Port:               3000,
		Environment:        "development",
		DatabaseURL:        connStr,
		BillingUnitMinutes: 60,
		DefaultTimezone:    "America/Guatemala",
		SettlementInterval: time.Minute,
		RateLimitPerMinute: 1000,
	}

	code := m.Run()
	os.Exit(code)
}

func newTestRouter() *Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(logger, &Dependencies{DB: testDB, Config: testCfg})
	router.Setup()
	return router
}

func TestIntegration_HealthEndpoint(t *testing.T) {
	router := newTestRouter()
	defer router.Shutdown()

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := router.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("status = %v, want ok", result["status"])
	}
}

func TestIntegration_ReadyEndpoint(t *testing.T) {
	router := newTestRouter()
	defer router.Shutdown()

	req := httptest.NewRequest("GET", "/ready", nil)
	resp, err := router.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Status = %d, want 200", resp.StatusCode)
	}
}

func TestIntegration_NotFoundReturns404(t *testing.T) {
	router := newTestRouter()
	defer router.Shutdown()

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	resp, err := router.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 404 {
		t.Errorf("Status = %d, want 404", resp.StatusCode)
	}
}

func TestIntegration_PlanCatalogSeeded(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not available")
	}

	ctx := context.Background()

	var count int
	err := testDB.QueryRow(ctx, "SELECT COUNT(*) FROM subscription_plans").Scan(&count)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if count != 5 {
		t.Errorf("Plan count = %d, want 5 (A through E)", count)
	}
}

func TestIntegration_ListPlansEndpoint(t *testing.T) {
	router := newTestRouter()
	defer router.Shutdown()

	req := httptest.NewRequest("GET", "/v1/plans", nil)
	resp, err := router.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result struct {
		Plans []map[string]interface{} `json:"plans"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(result.Plans) != 5 {
		t.Errorf("Plans = %d, want 5", len(result.Plans))
	}
}
