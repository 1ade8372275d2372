package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storereviews/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "REQUEST_TIMEOUT_SECONDS", "UPSTREAM_RPS", "PLAY_BASE_URL"} {
		t.Setenv(k, "")
	}

	c := shared.Load(filepath.Join(t.TempDir(), "missing.env"))
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr: got %q", c.HTTPAddr)
	}
	if c.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout should default to disabled, got %s", c.RequestTimeout)
	}
	if c.UpstreamRPS != 5 || c.PlayBase != "https://play.google.com" {
		t.Fatalf("unexpected upstream defaults: %+v", c)
	}
}

func TestLoad_EnvAndDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("COLLECT_WORKERS=9\nHTTP_ADDR=:1111\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_ADDR", ":2222") // environment beats the file
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("UPSTREAM_RPS", "-1")
	// registers a restore, then clear it so the file value applies
	t.Setenv("COLLECT_WORKERS", "")
	os.Unsetenv("COLLECT_WORKERS")

	c := shared.Load(path)
	if c.HTTPAddr != ":2222" {
		t.Fatalf("HTTPAddr: got %q", c.HTTPAddr)
	}
	if c.CollectWorkers != 9 {
		t.Fatalf("CollectWorkers from file: got %d", c.CollectWorkers)
	}
	if c.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout: got %s", c.RequestTimeout)
	}
	if c.UpstreamRPS != 5 {
		t.Fatalf("non-positive UPSTREAM_RPS should fall back to 5, got %d", c.UpstreamRPS)
	}
}
