package metricsdb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ext-sakamoro/ALICE-Search/pkg/config"
)

// TestRecordAndQuery exercises Open/RecordQuery/Flush/QueryLatency against
// a live Postgres instance, skipped unless ALICE_TEST_POSTGRES_HOST names
// its host. The remaining connection settings are fixed in the test rather
// than read through the config package's env-override wiring.
func TestRecordAndQuery(t *testing.T) {
	host := os.Getenv("ALICE_TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("set ALICE_TEST_POSTGRES_HOST to run against a live postgres instance")
	}

	cfg := config.PostgresConfig{
		Host: host, Port: 5432, Database: "alicesearch_test",
		User: "alicesearch", Password: "localdev", SSLMode: "disable",
		MaxOpenConns: 5, MaxIdleConns: 1,
	}

	sink, err := Open(cfg)
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	require.NoError(t, sink.RecordQuery(ctx, 1000, 3, 120))
	require.NoError(t, sink.RecordQuery(ctx, 2000, 0, 80))
	require.NoError(t, sink.Flush(ctx))

	latencies, err := sink.QueryLatency(ctx, 0, 3000)
	require.NoError(t, err)
	require.Len(t, latencies, 2)

	results, err := sink.QueryResults(ctx, 0, 3000)
	require.NoError(t, err)
	require.Len(t, results, 2)
}
