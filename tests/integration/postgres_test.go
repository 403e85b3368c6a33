//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/welldanyogia/inboxzero/internal/database"
	"gorm.io/gorm"
)

// postgresDB is a migrated database inside a throwaway container
type postgresDB struct {
	container testcontainers.Container
	DB        *gorm.DB
	URL       string
}

// startPostgres starts PostgreSQL, connects through database.Connect and runs the migrations
func startPostgres(t *testing.T, dbName string) *postgresDB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       dbName,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://test:test@%s:%s/%s?sslmode=disable", host, port.Port(), dbName)
	db, err := database.Connect(url, database.Options{LogLevel: "error"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return &postgresDB{container: container, DB: db, URL: url}
}

// Truncate empties every table and resets the id sequences
func (p *postgresDB) Truncate(t *testing.T) {
	t.Helper()
	require.NoError(t, p.DB.Exec("TRUNCATE TABLE emails, users RESTART IDENTITY CASCADE").Error)
}

// Stop closes the connection and removes the container
func (p *postgresDB) Stop() {
	if p.DB != nil {
		database.Close(p.DB)
	}
	if p.container != nil {
		p.container.Terminate(context.Background())
	}
}
