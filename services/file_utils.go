package services

import (
	"strings"
	"unicode/utf8"

	"filevault/config"
)

// defaultAllowedTypes is the upload allow-list used when the config does not
// override it: pdf, doc, docx, txt, svg, png, jpeg, xls, xlsx.
var defaultAllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"image/svg+xml",
	"image/png",
	"image/jpeg",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func isMimeTypeAllowed(mimeType string) bool {
	allowed := config.AppConfig.Storage.AllowedTypes
	if len(allowed) == 0 {
		allowed = defaultAllowedTypes
	}

	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	for _, t := range allowed {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "*" || t == normalized {
			return true
		}
	}
	return false
}

const maxFileNameLength = 200

// The limit is in characters, not bytes: the column is varchar(200) and
// multibyte names count one per rune.
func validateFileName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= maxFileNameLength
}

func isThumbnailable(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/png", "image/jpeg":
		return true
	}
	return false
}
