package domain

// Review is one record as returned by a store. Fields are whatever the store
// exposes (rating, text, author, date, ...); the service passes them through.
type Review map[string]any

// ContinuationToken resumes a paged listing. Empty means "first page" on input
// and "no more pages" on output.
type ContinuationToken string

type Platform string

const (
	PlatformPlayStore Platform = "PlayStore"
	PlatformAppStore  Platform = "AppStore"
)

// Sort orders understood by the Play Store listing.
type Sort int

const (
	SortMostRelevant Sort = 1
	SortNewest       Sort = 2
	SortRating       Sort = 3
)

type PlayReviewsQuery struct {
	PackageID string
	Lang      string // hl, e.g. "en"
	Country   string // gl, e.g. "us"
	Sort      Sort
	Stars     int // score filter, forwarded as-is
	Count     int // page size
	Token     ContinuationToken
}

type ReviewPage struct {
	Reviews []Review
	Next    ContinuationToken
}

// AppRef binds an App Store listing: country code, human app name and numeric id.
type AppRef struct {
	Country string
	Name    string
	ID      string
}
