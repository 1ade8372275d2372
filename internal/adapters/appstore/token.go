package appstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var (
	errNoToken = errors.New("appstore: bearer token not found on landing page")

	// url-encoded `token":"...` anywhere in the page
	tokenScan = regexp.MustCompile(`token%22%3A%22(.+?)%22`)
)

const envMetaSelector = `meta[name="web-experience-app/config/environment"]`

// findToken pulls the catalog API bearer token out of an App Store landing
// page. The web client ships it url-encoded in a config meta tag.
func findToken(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err == nil {
		if content, ok := doc.Find(envMetaSelector).First().Attr("content"); ok {
			if tok := tokenFromEnvironment(content); tok != "" {
				return tok, nil
			}
		}
	}

	if m := tokenScan.FindSubmatch(page); m != nil {
		return string(m[1]), nil
	}
	return "", errNoToken
}

func tokenFromEnvironment(content string) string {
	decoded, err := url.QueryUnescape(content)
	if err != nil {
		return ""
	}
	var env struct {
		MediaAPI struct {
			Token string `json:"token"`
		} `json:"MEDIA_API"`
	}
	if err := json.Unmarshal([]byte(decoded), &env); err != nil {
		return ""
	}
	return env.MediaAPI.Token
}
