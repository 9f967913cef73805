package db

import (
	"context"
	"credstore/internal/db/migrations"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

const TestPostgresqlURLEnv = "TEST_POSTGRESQL_URL"

// CreateTestPool connects to the test database and applies migrations. The
// calling test is skipped when TEST_POSTGRESQL_URL is not set.
func CreateTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	connString := os.Getenv(TestPostgresqlURLEnv)
	if connString == "" {
		t.Skipf("%s is not set.", TestPostgresqlURLEnv)
	}
	if err := migrations.Up(connString); err != nil {
		panic(fmt.Sprintf("Could not apply DB migrations %v.", err))
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic("Could not connect to the database.")
	}

	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE auth_credentials, auth_password_action")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
