package itests

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/GoCodeAlone/testartifacts"
	"github.com/GoCodeAlone/testartifacts/feeders"
)

const (
	contextConfigDir   = "testdata/config"
	contextEnvironment = "itest"
)

// environment is shared by every test in the package; it is read-only after TestMain.
var environment *testartifacts.Environment

func TestMain(m *testing.M) {
	env, err := loadEnvironment(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load integration test context: %v\n", err)
		os.Exit(1)
	}
	environment = env

	os.Exit(m.Run())
}

// loadEnvironment builds the base test context: layered file config first,
// then SERVER_URL / SERVER_NAME from the process environment.
func loadEnvironment(ctx context.Context) (*testartifacts.Environment, error) {
	logger := testartifacts.NewTextLogger(os.Stderr, slog.LevelWarn)
	tc := testartifacts.NewTestContext(
		testartifacts.NewStdConfigProvider(&testartifacts.EnvironmentConfig{}),
		logger,
		testartifacts.WithConfigFeeders(
			feeders.NewBaseConfigFeeder(contextConfigDir, contextEnvironment),
			feeders.NewEnvFeeder(),
		),
	)
	if err := tc.Load(ctx); err != nil {
		return nil, err
	}
	return tc.Environment()
}
