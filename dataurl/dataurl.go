// Package dataurl implements the textual transport encoding used to move
// binary file content across the request boundary: a base64 data URL of the
// form "data:<mime>;base64,<payload>".
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEncoding = errors.New("invalid base64 payload")

const prefix = "data:"

// Encode produces the self-describing textual form of data.
func Encode(data []byte, mimeType string) string {
	return prefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode strips an optional data-URL prefix and decodes the base64 payload.
// The returned mime type is empty when the input was a bare base64 string.
func Decode(s string) ([]byte, string, error) {
	payload := s
	mimeType := ""

	if strings.HasPrefix(s, prefix) {
		comma := strings.Index(s, ",")
		if comma < 0 {
			return nil, "", fmt.Errorf("%w: data URL has no payload", ErrInvalidEncoding)
		}
		meta := s[len(prefix):comma]
		payload = s[comma+1:]

		mimeType = meta
		if semi := strings.Index(meta, ";"); semi >= 0 {
			mimeType = meta[:semi]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, mimeType, nil
}
