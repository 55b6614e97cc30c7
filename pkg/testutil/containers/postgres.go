//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer instancia efímera de PostgreSQL para pruebas de integración.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
}

// NewPostgresContainer levanta PostgreSQL y devuelve su DSN. El contenedor se
// termina al finalizar el test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("maestros"),
		tcpostgres.WithUsername("maestros"),
		tcpostgres.WithPassword("maestros"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("no se pudo iniciar el contenedor de postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("no se pudo obtener el DSN de postgres: %v", err)
	}

	return &PostgresContainer{Container: container, DSN: dsn}
}
