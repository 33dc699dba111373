package services

import (
	"strings"
	"testing"

	"filevault/config"
)

func TestIsMimeTypeAllowed(t *testing.T) {
	setTestConfig(t)

	cases := []struct {
		mimeType string
		want     bool
	}{
		{"application/pdf", true},
		{"image/png", true},
		{"IMAGE/PNG", true},
		{"  text/plain  ", true},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"application/x-msdownload", false},
		{"video/mp4", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isMimeTypeAllowed(tc.mimeType); got != tc.want {
			t.Fatalf("isMimeTypeAllowed(%q) = %v, want %v", tc.mimeType, got, tc.want)
		}
	}
}

func TestMimeTypeWildcardOverride(t *testing.T) {
	setTestConfig(t)
	config.AppConfig.Storage.AllowedTypes = []string{"*"}

	if !isMimeTypeAllowed("video/mp4") {
		t.Fatalf("wildcard config should allow any type")
	}
}

func TestMimeTypeConfigOverride(t *testing.T) {
	setTestConfig(t)
	config.AppConfig.Storage.AllowedTypes = []string{"image/gif"}

	if !isMimeTypeAllowed("image/gif") {
		t.Fatalf("configured type should be allowed")
	}
	if isMimeTypeAllowed("application/pdf") {
		t.Fatalf("override replaces the default list")
	}
}

func TestValidateFileName(t *testing.T) {
	if validateFileName("") {
		t.Fatalf("empty name must be rejected")
	}
	if !validateFileName(strings.Repeat("a", maxFileNameLength)) {
		t.Fatalf("name at the limit must be accepted")
	}
	if validateFileName(strings.Repeat("a", maxFileNameLength+1)) {
		t.Fatalf("name over the limit must be rejected")
	}
	// The limit counts characters, not bytes.
	if !validateFileName(strings.Repeat("文", maxFileNameLength)) {
		t.Fatalf("multibyte name at the limit must be accepted")
	}
	if validateFileName(strings.Repeat("文", maxFileNameLength+1)) {
		t.Fatalf("multibyte name over the limit must be rejected")
	}
}

func TestIsThumbnailable(t *testing.T) {
	if !isThumbnailable("image/png") || !isThumbnailable("image/jpeg") {
		t.Fatalf("png and jpeg are thumbnailable")
	}
	if isThumbnailable("image/svg+xml") || isThumbnailable("application/pdf") {
		t.Fatalf("only raster images get thumbnails")
	}
}
