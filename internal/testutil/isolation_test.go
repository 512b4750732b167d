package testutil

import (
	"os"
	"testing"
)

func TestIsolate_ClearsAndRestoresEnv(t *testing.T) {
	os.Setenv("SERVER_URL", "http://outer.example")
	os.Unsetenv("SERVER_NAME")
	defer os.Unsetenv("SERVER_URL")

	t.Run("inner", func(t *testing.T) {
		Isolate(t)

		if _, ok := os.LookupEnv("SERVER_URL"); ok {
			t.Fatalf("SERVER_URL should be unset inside isolated test")
		}
		Setenv(t, "SERVER_URL", "http://inner.example")
		Setenv(t, "SERVER_NAME", "inner")
	})

	if v := os.Getenv("SERVER_URL"); v != "http://outer.example" {
		t.Fatalf("expected SERVER_URL restored, got %q", v)
	}
	if _, ok := os.LookupEnv("SERVER_NAME"); ok {
		t.Fatalf("SERVER_NAME should be unset after restore")
	}
}

func TestIsolate_ExtraKeys(t *testing.T) {
	os.Setenv("ITEST_SERVER_NAME", "outer")
	defer os.Unsetenv("ITEST_SERVER_NAME")

	t.Run("inner", func(t *testing.T) {
		Isolate(t, "ITEST_SERVER_NAME")
		if _, ok := os.LookupEnv("ITEST_SERVER_NAME"); ok {
			t.Fatalf("extra key should be unset inside isolated test")
		}
	})

	if v := os.Getenv("ITEST_SERVER_NAME"); v != "outer" {
		t.Fatalf("expected extra key restored, got %q", v)
	}
}
