// Package testutil holds helpers shared by the test suites.
package testutil

import (
	"os"
	"testing"
)

// TrackedEnv lists the variables that select or feed the test configuration.
var TrackedEnv = []string{
	"SERVER_URL",
	"SERVER_NAME",
	"APP_ENVIRONMENT",
	"ENVIRONMENT",
	"ENV",
}

// Isolate unsets TrackedEnv plus any extra keys for the duration of the test and
// restores the previous values through t.Cleanup.
func Isolate(t *testing.T, extra ...string) {
	t.Helper()

	keys := append(append([]string{}, TrackedEnv...), extra...)
	snapshot := make(map[string]*string, len(keys))
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			val := v
			snapshot[k] = &val
		} else {
			snapshot[k] = nil
		}
		_ = os.Unsetenv(k)
	}

	t.Cleanup(func() {
		for k, v := range snapshot {
			if v == nil {
				_ = os.Unsetenv(k)
			} else {
				_ = os.Setenv(k, *v)
			}
		}
	})
}

// Setenv sets key for the duration of the test. Call Isolate first so the
// previous value is restored.
func Setenv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}
