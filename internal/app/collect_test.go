package app_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"storereviews/internal/app"
	"storereviews/internal/domain"
)

func decodeLines(t *testing.T, b []byte) []app.Envelope {
	t.Helper()
	var out []app.Envelope
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		var e app.Envelope
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}

func TestCollect_MixedTargets(t *testing.T) {
	play := &fakePlay{pages: []domain.ReviewPage{{Reviews: reviews("p", 4), Next: ""}}}
	apps := &fakeApps{revs: reviews("a", 2)}
	svc := app.NewCollectionService(newService(play, apps), 3)

	targets := []app.Target{
		{URL: "https://apps.apple.com/us/app/demo/id1"},
		{URL: "https://example.com/not-a-store"},
		{URL: "https://play.google.com/store/apps/details?id=com.demo", Count: 10, Stars: 2},
	}
	var buf bytes.Buffer
	failed, err := svc.Collect(context.Background(), targets, &buf)
	require.NoError(t, err)
	require.Equal(t, 1, failed)

	got := decodeLines(t, buf.Bytes())
	require.Len(t, got, 3)

	require.Equal(t, domain.PlatformAppStore, got[0].Platform)
	require.Len(t, got[0].Reviews, 2)
	require.Equal(t, []int{20}, apps.n, "num_reviews defaults to 20")

	require.Equal(t, "https://example.com/not-a-store", got[1].URL)
	require.NotEmpty(t, got[1].Error)

	require.Equal(t, domain.PlatformPlayStore, got[2].Platform)
	require.Len(t, got[2].Reviews, 4)
	require.Len(t, play.queries, 1)
	require.Equal(t, 10, play.queries[0].Count)
	require.Equal(t, 2, play.queries[0].Stars)
}

func TestCollect_DefaultsForPlay(t *testing.T) {
	play := &fakePlay{pages: []domain.ReviewPage{{Reviews: reviews("p", 1)}}}
	svc := app.NewCollectionService(newService(play, nil), 0)

	var buf bytes.Buffer
	_, err := svc.Collect(context.Background(), []app.Target{{URL: playURL}}, &buf)
	require.NoError(t, err)
	require.Equal(t, 100, play.queries[0].Count, "count 200 is fetched 100 at a time")
	require.Equal(t, 5, play.queries[0].Stars)
}

func TestCollect_ClientFailureIsReportedNotReturned(t *testing.T) {
	svc := app.NewCollectionService(newService(&fakePlay{err: errors.New("blocked")}, nil), 2)

	var buf bytes.Buffer
	failed, err := svc.Collect(context.Background(), []app.Target{{URL: playURL}}, &buf)
	require.NoError(t, err)
	require.Equal(t, 1, failed)
	got := decodeLines(t, buf.Bytes())
	require.Contains(t, got[0].Error, "blocked")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestCollect_WriteErrorReturned(t *testing.T) {
	svc := app.NewCollectionService(newService(nil, &fakeApps{revs: reviews("a", 1)}), 1)
	_, err := svc.Collect(context.Background(), []app.Target{{URL: "https://apps.apple.com/us/app/a/id1"}}, failingWriter{})
	require.ErrorContains(t, err, "disk full")
}

func TestCollect_CanceledContext(t *testing.T) {
	svc := app.NewCollectionService(newService(&fakePlay{}, nil), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Collect(ctx, []app.Target{{URL: playURL}}, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}
