// Package helpers provides shared setup for integration tests that need a
// real postgres instance. Tests skip themselves when TEST_DATABASE_HOST is
// unset, so the ordinary unit test run never touches a database.
package helpers

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/pool-portal/internal/config"
	"github.com/yourusername/pool-portal/internal/database"
	"github.com/yourusername/pool-portal/internal/models"
	"github.com/yourusername/pool-portal/internal/repository"
)

// SetupTestStore connects to the test database, ensures the schema and
// returns postgres-backed repositories. The test is skipped when no test
// database is configured.
func SetupTestStore(t *testing.T) (*database.DB, *repository.Repositories) {
	t.Helper()

	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TEST_DATABASE_HOST not set, skipping integration test")
	}

	cfg := &config.DatabaseConfig{
		Host:           host,
		Port:           envInt("TEST_DATABASE_PORT", 5432),
		Name:           envString("TEST_DATABASE_NAME", "pool_portal_test"),
		User:           envString("TEST_DATABASE_USER", "pool_portal"),
		Password:       os.Getenv("TEST_DATABASE_PASSWORD"),
		SSLMode:        "disable",
		MaxConnections: 2,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	require.NoError(t, err, "failed to initialize test database")

	repos, err := repository.NewPostgresRepositories(db)
	require.NoError(t, err, "failed to create repositories")

	return db, repos
}

// TeardownTestStore wipes the portal tables and closes the connection.
func TeardownTestStore(t *testing.T, db *database.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range []string{"outcomes", "updates", "admin_comment"} {
		_, err := db.GetPool().Exec(ctx, "DELETE FROM "+table)
		require.NoError(t, err, "failed to clean up table %s", table)
	}

	db.Close()
}

// SeedOutcomes inserts one record per result, a day apart, oldest first.
func SeedOutcomes(t *testing.T, repos *repository.Repositories, results ...models.Category) []*models.OutcomeRecord {
	t.Helper()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := make([]*models.OutcomeRecord, len(results))
	for i, result := range results {
		records[i] = models.NewOutcomeRecord(base.Add(time.Duration(i)*24*time.Hour), result)
		require.NoError(t, repos.Outcomes.Append(context.Background(), records[i]))
	}
	return records
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
