package domain

import "context"

// PlayStoreClient lists one page of Play Store reviews per call.
type PlayStoreClient interface {
	ListReviews(ctx context.Context, q PlayReviewsQuery) (ReviewPage, error)
}

// AppStoreClient fetches up to howMany reviews for an app in one shot; paging,
// if any, is the client's business.
type AppStoreClient interface {
	Reviews(ctx context.Context, app AppRef, howMany int) ([]Review, error)
}
