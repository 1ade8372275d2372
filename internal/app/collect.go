package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"storereviews/internal/domain"
)

const (
	defaultPlayCount = 200
	defaultPlayStars = 5
	defaultAppCount  = 20
)

// Target is one storefront listing to export. Zero values fall back to the
// same defaults the HTTP API uses.
type Target struct {
	URL        string `yaml:"url" json:"url"`
	Count      int    `yaml:"count,omitempty" json:"count,omitempty"`
	Stars      int    `yaml:"stars,omitempty" json:"stars,omitempty"`
	NumReviews int    `yaml:"num_reviews,omitempty" json:"num_reviews,omitempty"`
}

// Envelope is one line of collector output.
type Envelope struct {
	URL      string          `json:"url"`
	Platform domain.Platform `json:"platform,omitempty"`
	Reviews  []domain.Review `json:"reviews,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type CollectionService struct {
	reviews *ReviewService
	workers int64
}

func NewCollectionService(r *ReviewService, workers int) *CollectionService {
	if workers <= 0 {
		workers = 1
	}
	return &CollectionService{reviews: r, workers: int64(workers)}
}

// Collect fetches every target with bounded concurrency and writes one JSON
// envelope per target to w. A failing target yields an error envelope; only
// write failures and cancellation are returned.
func (s *CollectionService) Collect(ctx context.Context, targets []Target, w io.Writer) (failed int, err error) {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		enc      = json.NewEncoder(w)
		writeErr error
	)

	for _, t := range targets {
		t := t

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return failed, err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			env := s.collectOne(ctx, t)

			mu.Lock()
			defer mu.Unlock()
			if env.Error != "" {
				failed++
				log.Warn().Str("url", t.URL).Str("error", env.Error).Msg("collect failed")
			} else {
				log.Info().Str("url", t.URL).Int("reviews", len(env.Reviews)).Msg("collect ok")
			}
			if writeErr == nil {
				if err := enc.Encode(env); err != nil {
					writeErr = fmt.Errorf("write envelope: %w", err)
				}
			}
		}()
	}

	wg.Wait()
	return failed, writeErr
}

func (s *CollectionService) collectOne(ctx context.Context, t Target) Envelope {
	env := Envelope{URL: t.URL}
	platform, ok := DetectPlatform(t.URL)
	if !ok {
		env.Error = "unrecognised store URL"
		return env
	}
	env.Platform = platform

	var (
		revs []domain.Review
		err  error
	)
	switch platform {
	case domain.PlatformPlayStore:
		revs, err = s.reviews.FetchPlayStoreReviews(ctx, t.URL, orDefault(t.Count, defaultPlayCount), orDefault(t.Stars, defaultPlayStars))
	case domain.PlatformAppStore:
		revs, err = s.reviews.FetchAppStoreReviews(ctx, t.URL, orDefault(t.NumReviews, defaultAppCount))
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			env.Error = "canceled"
		} else {
			env.Error = err.Error()
		}
		return env
	}
	env.Reviews = revs
	return env
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
