/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package core

import (
	"errors"
	"fmt"
	"strings"
)

// Callback payload kinds.
const (
	KindQuality = "quality"
	KindFormat  = "format"
)

var ErrBadPayload = errors.New("malformed callback payload")

// QualityPayload is the decoded form of a quality-selection button payload:
// quality_{platform}_{selector}_{identifier}. The identifier may itself
// contain the delimiter, so decoding splits into at most 4 parts and keeps
// everything after the third delimiter joined.
type QualityPayload struct {
	Platform   string
	Selector   string
	Identifier string
}

// EncodeQuality builds a quality-selection payload.
func EncodeQuality(platform, selector, identifier string) string {
	return fmt.Sprintf("%s_%s_%s_%s", KindQuality, platform, selector, identifier)
}

// DecodeQuality parses a quality-selection payload.
func DecodeQuality(data string) (QualityPayload, error) {
	parts := strings.SplitN(data, "_", 4)
	if len(parts) != 4 || parts[0] != KindQuality || parts[1] == "" || parts[2] == "" || parts[3] == "" {
		return QualityPayload{}, ErrBadPayload
	}

	return QualityPayload{
		Platform:   parts[1],
		Selector:   parts[2],
		Identifier: parts[3],
	}, nil
}

// EncodeFormat builds a song-selection payload: format_saavn_{identifier}.
func EncodeFormat(identifier string) string {
	return fmt.Sprintf("%s_%s_%s", KindFormat, "saavn", identifier)
}

// DecodeFormat parses a song-selection payload, keeping everything after the
// second delimiter joined as the identifier.
func DecodeFormat(data string) (string, error) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 || parts[0] != KindFormat || parts[1] != "saavn" || parts[2] == "" {
		return "", ErrBadPayload
	}
	return parts[2], nil
}
