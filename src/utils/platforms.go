/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package utils

import "strings"

// Platform identifiers used in callback payloads and tickets.
const (
	YouTube  = "yt"
	JioSaavn = "saavn"
)

// IsYouTubeURL reports whether text points at YouTube.
func IsYouTubeURL(text string) bool {
	return strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be")
}

// IsSaavnURL reports whether text points at JioSaavn.
func IsSaavnURL(text string) bool {
	return strings.Contains(text, "jiosaavn.com") || strings.Contains(text, "saavn.com")
}

// IsSaavnPlaylistURL reports whether a Saavn link is an album or playlist page.
func IsSaavnPlaylistURL(text string) bool {
	return IsSaavnURL(text) &&
		(strings.Contains(text, "/album/") || strings.Contains(text, "/playlist/") || strings.Contains(text, "/featured/"))
}
