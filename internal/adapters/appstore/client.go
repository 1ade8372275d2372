// Package appstore fetches App Store customer reviews the way the web
// storefront does: scrape a bearer token from the app's landing page, then
// walk the catalog reviews API until enough reviews are collected.
package appstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"storereviews/internal/adapters/upstream"
	"storereviews/internal/domain"
)

const (
	service  = "appstore"
	pageSize = 20
)

type Client struct {
	landing *resty.Client
	api     *resty.Client
	origin  string
}

func New(landingBase, apiBase string, timeout time.Duration, rps int) *Client {
	return &Client{
		landing: upstream.New(upstream.Options{Service: service, BaseURL: landingBase, Timeout: timeout, RPS: rps}),
		api:     upstream.New(upstream.Options{Service: service, BaseURL: apiBase, Timeout: timeout, RPS: rps}),
		origin:  strings.TrimRight(landingBase, "/"),
	}
}

type reviewsResponse struct {
	Next string `json:"next"`
	Data []struct {
		ID         string         `json:"id"`
		Attributes map[string]any `json:"attributes"`
	} `json:"data"`
}

// Reviews returns at most howMany reviews, newest pages first as the API
// serves them. Each record is the API's attributes object, unmodified.
func (c *Client) Reviews(ctx context.Context, app domain.AppRef, howMany int) ([]domain.Review, error) {
	out := make([]domain.Review, 0, max(min(howMany, 500), 0))
	if howMany <= 0 {
		return out, nil
	}

	landingPath := fmt.Sprintf("/%s/app/%s/id%s", url.PathEscape(app.Country), url.PathEscape(slug(app.Name)), app.ID)
	token, err := c.token(ctx, landingPath)
	if err != nil {
		return nil, err
	}

	reviewsPath := fmt.Sprintf("/v1/catalog/%s/apps/%s/reviews", url.PathEscape(app.Country), app.ID)
	offset := 0
	for len(out) < howMany {
		var body reviewsResponse
		res, err := c.api.R().
			SetContext(upstream.WithEndpoint(ctx, "reviews")).
			SetAuthToken(token).
			SetHeader("Accept", "application/json").
			SetHeader("Origin", c.origin).
			SetHeader("Referer", c.origin+landingPath).
			SetQueryParams(map[string]string{
				"l":                   "en-GB",
				"offset":              strconv.Itoa(offset),
				"limit":               strconv.Itoa(pageSize),
				"platform":            "web",
				"additionalPlatforms": "appletv,ipad,iphone,mac",
			}).
			SetResult(&body).
			Get(reviewsPath)
		if err != nil {
			return nil, fmt.Errorf("%s: get reviews: %w", service, err)
		}
		if err := upstream.Check(service, res); err != nil {
			return nil, err
		}

		for _, d := range body.Data {
			if len(out) == howMany {
				break
			}
			out = append(out, domain.Review(d.Attributes))
		}

		next, ok := nextOffset(body.Next)
		if !ok || len(body.Data) == 0 || next <= offset {
			break
		}
		offset = next
	}

	log.Debug().Str("app_id", app.ID).Int("reviews", len(out)).Msg("app store reviews fetched")
	return out, nil
}

func (c *Client) token(ctx context.Context, landingPath string) (string, error) {
	res, err := c.landing.R().
		SetContext(upstream.WithEndpoint(ctx, "landing")).
		SetHeader("Accept", "text/html").
		Get(landingPath)
	if err != nil {
		return "", fmt.Errorf("%s: get landing page: %w", service, err)
	}
	if err := upstream.Check(service, res); err != nil {
		return "", err
	}
	return findToken(res.Body())
}

// nextOffset reads the offset query parameter of the API's "next" link.
func nextOffset(next string) (int, bool) {
	if next == "" {
		return 0, false
	}
	u, err := url.Parse(next)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(u.Query().Get("offset"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// slug turns a display name back into the landing page path segment.
func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
