//go:build integration

package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// NewPostgres starts a postgres container, applies the SQL migrations and
// loads the Sample dataset
func NewPostgres(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "mealplanner",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Error terminating postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "test",
		Password:        "test",
		Name:            "mealplanner",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}

	log := zap.NewNop()
	db, err := database.New(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db, cfg, log))
	require.NoError(t, Seed(db.ORM))

	// Explicit ids bypass the sequences
	for table, column := range map[string]string{"recipe": "recipe_id", "rating": "rating_id", "review": "review_id"} {
		require.NoError(t, db.ORM.Exec(
			"SELECT setval(pg_get_serial_sequence(?, ?), (SELECT COALESCE(MAX("+column+"), 1) FROM "+table+"))",
			table, column,
		).Error)
	}
	return db
}
