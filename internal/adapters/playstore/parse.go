package playstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"storereviews/internal/domain"
)

// xssiPrefix guards every batchexecute response.
var xssiPrefix = []byte(")]}'")

// parseResponse unwraps the batchexecute envelope and maps the positional
// review arrays into records.
func parseResponse(body []byte) (domain.ReviewPage, error) {
	body = bytes.TrimSpace(body)
	body = bytes.TrimPrefix(body, xssiPrefix)

	var envelope []any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.ReviewPage{}, fmt.Errorf("%s: decode envelope: %w", service, err)
	}

	payload, ok := lookupIndex(envelope, 0, 2).(string)
	if !ok || payload == "" {
		// nothing for this app/filter combination
		return domain.ReviewPage{Reviews: []domain.Review{}}, nil
	}

	var data []any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return domain.ReviewPage{}, fmt.Errorf("%s: decode payload: %w", service, err)
	}

	raw, _ := lookupIndex(data, 0).([]any)
	page := domain.ReviewPage{Reviews: make([]domain.Review, 0, len(raw))}
	for _, r := range raw {
		if arr, ok := r.([]any); ok {
			page.Reviews = append(page.Reviews, mapReview(arr))
		}
	}
	if tok, ok := lookupIndex(data, -2, -1).(string); ok {
		page.Next = domain.ContinuationToken(tok)
	}
	return page, nil
}

// mapReview turns one positional review array into a keyed record.
func mapReview(r []any) domain.Review {
	return domain.Review{
		"reviewId":             lookupString(r, 0),
		"userName":             lookupString(r, 1, 0),
		"userImage":            lookupString(r, 1, 1, 3, 2),
		"content":              lookupString(r, 4),
		"score":                lookupInt(r, 2),
		"thumbsUpCount":        lookupInt(r, 6),
		"reviewCreatedVersion": lookupString(r, 10),
		"at":                   lookupTime(r, 5, 0),
		"replyContent":         lookupString(r, 7, 1),
		"repliedAt":            lookupTime(r, 7, 2, 0),
		"appVersion":           lookupString(r, 10),
	}
}

/********** positional helpers **********/

// lookupIndex walks nested arrays; negative indices count from the end.
// Returns nil as soon as the path leaves the data.
func lookupIndex(v any, path ...int) any {
	cur := v
	for _, i := range path {
		arr, ok := cur.([]any)
		if !ok {
			return nil
		}
		if i < 0 {
			i += len(arr)
		}
		if i < 0 || i >= len(arr) {
			return nil
		}
		cur = arr[i]
	}
	return cur
}

// lookupString returns the string at path, or nil so the field encodes as null.
func lookupString(v any, path ...int) any {
	if s, ok := lookupIndex(v, path...).(string); ok {
		return s
	}
	return nil
}

func lookupInt(v any, path ...int) any {
	if f, ok := lookupIndex(v, path...).(float64); ok {
		return int64(f)
	}
	return nil
}

// lookupTime reads a unix-seconds timestamp and renders it as RFC 3339 UTC.
func lookupTime(v any, path ...int) any {
	if f, ok := lookupIndex(v, path...).(float64); ok {
		return time.Unix(int64(f), 0).UTC().Format(time.RFC3339)
	}
	return nil
}
