package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"storereviews/internal/adapters/observability"
	"storereviews/internal/domain"
)

const (
	playLang     = "en"
	playCountry  = "us"
	playMaxPage  = 100
	playPageWait = time.Second // courtesy delay between Play Store calls
)

type ReviewService struct {
	play     domain.PlayStoreClient
	apps     domain.AppStoreClient
	pageWait time.Duration
}

func NewReviewService(p domain.PlayStoreClient, a domain.AppStoreClient) *ReviewService {
	return &ReviewService{play: p, apps: a, pageWait: playPageWait}
}

// FetchPlayStoreReviews pages through the newest reviews of the app behind url
// until count reviews are collected or the store runs out of pages.
func (s *ReviewService) FetchPlayStoreReviews(ctx context.Context, url string, count, stars int) ([]domain.Review, error) {
	pkg, ok := ExtractPlayStoreID(url)
	if !ok {
		return nil, domain.ErrInvalidPlayStoreURL
	}

	results := make([]domain.Review, 0, min(max(count, 0), playMaxPage))
	var token domain.ContinuationToken

	for calls := 0; len(results) < count; calls++ {
		if calls > 0 && !sleepCtx(ctx, s.pageWait) {
			return nil, ctx.Err()
		}

		page, err := s.play.ListReviews(ctx, domain.PlayReviewsQuery{
			PackageID: pkg,
			Lang:      playLang,
			Country:   playCountry,
			Sort:      domain.SortNewest,
			Stars:     stars,
			Count:     min(count-len(results), playMaxPage),
			Token:     token,
		})
		if err != nil {
			return nil, fmt.Errorf("list play store reviews for %s: %w", pkg, err)
		}

		// never hand back more than asked for, even if the store overshoots
		if room := count - len(results); len(page.Reviews) > room {
			page.Reviews = page.Reviews[:room]
		}
		results = append(results, page.Reviews...)
		token = page.Next

		// exhausted: stop instead of asking for the same empty page forever
		if len(page.Reviews) == 0 || token == "" {
			log.Debug().
				Str("package", pkg).
				Int("got", len(results)).
				Int("want", count).
				Msg("play store listing exhausted")
			break
		}
	}

	observability.ObserveReviews(string(domain.PlatformPlayStore), len(results))
	return results, nil
}

// FetchAppStoreReviews asks the App Store client for howMany reviews of the app
// behind url in a single call.
func (s *ReviewService) FetchAppStoreReviews(ctx context.Context, url string, howMany int) ([]domain.Review, error) {
	country, name, id, ok := ExtractAppStoreInfo(url)
	if !ok {
		return nil, domain.ErrInvalidAppStoreURL
	}

	revs, err := s.apps.Reviews(ctx, domain.AppRef{Country: country, Name: name, ID: id}, howMany)
	if err != nil {
		return nil, fmt.Errorf("fetch app store reviews for id%s: %w", id, err)
	}
	if len(revs) > howMany {
		revs = revs[:max(howMany, 0)]
	}
	if revs == nil {
		revs = []domain.Review{}
	}

	observability.ObserveReviews(string(domain.PlatformAppStore), len(revs))
	return revs, nil
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
