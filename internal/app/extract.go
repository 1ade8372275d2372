package app

import (
	"regexp"
	"strings"

	"storereviews/internal/domain"
)

var (
	// package id runs until the next query parameter or the end of the URL
	playStoreURL = regexp.MustCompile(`https://play\.google\.com/store/apps/details\?id=([^&]+)`)
	// anchored at the start; anything after the numeric id is ignored
	appStoreURL = regexp.MustCompile(`^https://apps\.apple\.com/(\w+)/app/([^/]+)/id(\d+)`)
)

// ExtractPlayStoreID returns the package identifier of a Play Store listing URL.
func ExtractPlayStoreID(url string) (string, bool) {
	m := playStoreURL.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractAppStoreInfo returns the country code, app name (hyphens replaced by
// spaces) and numeric app id of an App Store listing URL. Either all three are
// returned or ok is false.
func ExtractAppStoreInfo(url string) (country, appName, appID string, ok bool) {
	m := appStoreURL.FindStringSubmatch(url)
	if m == nil {
		return "", "", "", false
	}
	return m[1], strings.ReplaceAll(m[2], "-", " "), m[3], true
}

// DetectPlatform reports which store a listing URL belongs to.
func DetectPlatform(url string) (domain.Platform, bool) {
	if _, ok := ExtractPlayStoreID(url); ok {
		return domain.PlatformPlayStore, true
	}
	if _, _, _, ok := ExtractAppStoreInfo(url); ok {
		return domain.PlatformAppStore, true
	}
	return "", false
}
