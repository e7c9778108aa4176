// Package testdb opens a migrated in-memory SQLite pool for tests.
package testdb

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/catalog/database/migrations"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/migration"
)

var seq atomic.Int64

// New returns a pool over a private in-memory database with every migration
// applied. The pool is closed when the test ends.
func New(t testing.TB) *database.Pool {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", name, seq.Add(1))

	pool, err := database.Open(database.Config{
		Driver: "sqlite",
		DSN:    dsn,
		// A single connection keeps the shared in-memory database alive and
		// serialises writers.
		PoolSize: 1,
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, migration.New(pool.DB(), io.Discard).Run())
	return pool
}
