package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"storereviews/internal/app"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadTargets(t *testing.T) {
	p := writeFile(t, `
targets:
  - url: https://play.google.com/store/apps/details?id=com.example
    count: 300
    stars: 1
  - url: https://apps.apple.com/us/app/example/id123
    num_reviews: 50
`)
	got, err := LoadTargets(p)
	require.NoError(t, err)
	require.Equal(t, []app.Target{
		{URL: "https://play.google.com/store/apps/details?id=com.example", Count: 300, Stars: 1},
		{URL: "https://apps.apple.com/us/app/example/id123", NumReviews: 50},
	}, got)
}

func TestLoadTargets_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":   "targets: []\n",
		"no url":  "targets:\n  - count: 3\n",
		"garbage": "targets: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadTargets(writeFile(t, body))
			require.Error(t, err)
		})
	}

	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
