// Package playstore lists Google Play reviews through the web client's
// batchexecute RPC ("UsvDTd"), one page per call.
package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"storereviews/internal/adapters/upstream"
	"storereviews/internal/domain"
)

const (
	service      = "playstore"
	rpcID        = "UsvDTd"
	batchExecute = "/_/PlayStoreUi/data/batchexecute"
)

type Client struct {
	http *resty.Client
}

func New(base string, timeout time.Duration, rps int) *Client {
	return &Client{http: upstream.New(upstream.Options{
		Service: service,
		BaseURL: base,
		Timeout: timeout,
		RPS:     rps,
	})}
}

// ListReviews fetches one page. The returned token is empty when the listing
// has no further pages.
func (c *Client) ListReviews(ctx context.Context, q domain.PlayReviewsQuery) (domain.ReviewPage, error) {
	freq, err := buildRequest(q)
	if err != nil {
		return domain.ReviewPage{}, err
	}

	res, err := c.http.R().
		SetContext(upstream.WithEndpoint(ctx, "batchexecute")).
		SetQueryParams(map[string]string{"hl": q.Lang, "gl": q.Country}).
		SetFormData(map[string]string{"f.req": freq}).
		Post(batchExecute)
	if err != nil {
		return domain.ReviewPage{}, fmt.Errorf("%s: post: %w", service, err)
	}
	if err := upstream.Check(service, res); err != nil {
		return domain.ReviewPage{}, err
	}

	return parseResponse(res.Body())
}

// buildRequest renders the f.req form value:
//
//	[[["UsvDTd", "<inner json>", null, "generic"]]]
//	inner: [null,null,[2,sort,[count,null,token]],null,[null,score]],["pkg",7]]
func buildRequest(q domain.PlayReviewsQuery) (string, error) {
	var token any
	if q.Token != "" {
		token = string(q.Token)
	}
	var score any
	if q.Stars >= 1 && q.Stars <= 5 {
		score = q.Stars
	}
	sort := q.Sort
	if sort == 0 {
		sort = domain.SortNewest
	}

	inner, err := json.Marshal([]any{
		nil, nil,
		[]any{2, int(sort), []any{q.Count, nil, token}, nil, []any{nil, score}},
		[]any{q.PackageID, 7},
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", service, err)
	}
	outer, err := json.Marshal([]any{[]any{[]any{rpcID, string(inner), nil, "generic"}}})
	if err != nil {
		return "", fmt.Errorf("%s: encode envelope: %w", service, err)
	}
	return string(outer), nil
}
