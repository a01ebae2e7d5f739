/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// safeComponent keeps only letters, digits and spaces, then trims trailing
// whitespace.
func safeComponent(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// SafeFileName derives a filesystem-safe display name for a song:
// "{title} - {artist}.mp3" with every non-alphanumeric, non-space character
// stripped from both components.
func SafeFileName(title, artist string) string {
	return safeComponent(title) + " - " + safeComponent(artist) + ".mp3"
}

// shortID returns a compact per-request suffix for on-disk artifact names, so
// concurrent requests that normalize to the same display name never share a
// path.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Cleanup removes a downloaded artifact. Calling it on an already-deleted
// path is a no-op.
func Cleanup(path string) error {
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
