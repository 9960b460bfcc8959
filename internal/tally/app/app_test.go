package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	return Config{
		StoreDriver:         DriverSQLite,
		DatabaseFile:        filepath.Join(t.TempDir(), "tally.db"),
		JWTSecret:           "app-test-secret",
		Issuer:              "tally",
		CORSOrigins:         []string{"*"},
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                5000,
		ShutdownGracePeriod: time.Second,
		StoreTimeout:        2 * time.Second,
		SchemaRetryInterval: time.Second,
		AuthLimit:           httpx.SystemLimit,
		FinanceLimit:        httpx.SystemLimit,
		SystemLimit:         httpx.SystemLimit,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "redis"

	_, err := New(cfg)
	require.Error(t, err)
}

func TestApplicationServesSQLite(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	require.Nil(t, application.schemaService)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	client := tallysdk.NewSDKClient(srv.URL)
	ctx := t.Context()

	_, err = client.Signup(ctx, "alice", "p@ss")
	require.NoError(t, err)

	session, err := client.LoginSession(ctx, "alice", "p@ss")
	require.NoError(t, err)

	_, err = session.AddFinance(ctx, tallysdk.FinanceInput{
		Month: "2024-01", Income: tallysdk.Float(5000), Expenses: tallysdk.Float(3200),
	})
	require.NoError(t, err)

	entries, err := session.GetFinanceData(ctx)
	require.NoError(t, err)
	require.Equal(t, []tallysdk.FinanceEntry{
		{Month: "2024-01", Income: 5000, Expenses: 3200, Savings: 1800},
	}, entries)

	health, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}

func TestApplicationStartsWithUnreachableMongo(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = DriverMongo
	cfg.MongoURI = "mongodb://127.0.0.1:1"
	cfg.MongoDatabase = "tally_test"
	cfg.StoreTimeout = 200 * time.Millisecond

	application, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.schemaService)

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	_, err = tallysdk.NewSDKClient(srv.URL).GetReadiness(t.Context())
	var apiErr *tallysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	require.NoError(t, application.Shutdown())
}
