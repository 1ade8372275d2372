package app_test

import (
	"testing"

	"storereviews/internal/app"
	"storereviews/internal/domain"
)

func TestExtractPlayStoreID(t *testing.T) {
	cases := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://play.google.com/store/apps/details?id=com.example.app", "com.example.app", true},
		{"https://play.google.com/store/apps/details?id=com.example.app&hl=en&gl=US", "com.example.app", true},
		{"https://play.google.com/store/apps/details?id=org.x_y.z2&", "org.x_y.z2", true},
		// searched, not anchored
		{"see https://play.google.com/store/apps/details?id=a.b", "a.b", true},
		{"https://play.google.com/store/apps/details?id=", "", false},
		{"https://play.google.com/store/apps/details?hl=en&id=com.example.app", "", false},
		{"https://example.com", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := app.ExtractPlayStoreID(tc.url)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ExtractPlayStoreID(%q) = (%q, %v), want (%q, %v)", tc.url, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestExtractAppStoreInfo(t *testing.T) {
	cases := []struct {
		url               string
		country, name, id string
		wantOK            bool
	}{
		{"https://apps.apple.com/us/app/my-great-app/id123456789", "us", "my great app", "123456789", true},
		{"https://apps.apple.com/gb/app/solo/id42?platform=iphone", "gb", "solo", "42", true},
		{"https://apps.apple.com/de/app/a-b-c/id7/reviews", "de", "a b c", "7", true},
		{"https://apps.apple.com/us/app/my-great-app/idabc", "", "", "", false},
		{"https://apps.apple.com/us/app/id123", "", "", "", false},
		// anchored at the start
		{"x https://apps.apple.com/us/app/name/id1", "", "", "", false},
		{"https://play.google.com/store/apps/details?id=com.example.app", "", "", "", false},
	}
	for _, tc := range cases {
		c, n, id, ok := app.ExtractAppStoreInfo(tc.url)
		if ok != tc.wantOK || c != tc.country || n != tc.name || id != tc.id {
			t.Errorf("ExtractAppStoreInfo(%q) = (%q, %q, %q, %v), want (%q, %q, %q, %v)",
				tc.url, c, n, id, ok, tc.country, tc.name, tc.id, tc.wantOK)
		}
	}
}

func TestDetectPlatform(t *testing.T) {
	if p, ok := app.DetectPlatform("https://play.google.com/store/apps/details?id=x"); !ok || p != domain.PlatformPlayStore {
		t.Fatalf("play url: got %q %v", p, ok)
	}
	if p, ok := app.DetectPlatform("https://apps.apple.com/us/app/x/id1"); !ok || p != domain.PlatformAppStore {
		t.Fatalf("app store url: got %q %v", p, ok)
	}
	if _, ok := app.DetectPlatform("https://example.com"); ok {
		t.Fatalf("unknown url should not be detected")
	}
}
