/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package core

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbSize = 320

var thumbClient = &http.Client{Timeout: 10 * time.Second}

// FetchThumbnail downloads a track's cover art and writes it to dir as a
// Telegram-sized JPEG. The caller owns the returned file and deletes it after
// delivery. Best effort: callers treat failure as "no thumb".
func FetchThumbnail(url, dir string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no thumbnail url")
	}

	resp, err := thumbClient.Get(url)
	if err != nil {
		return "", err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "image") {
		return "", fmt.Errorf("not an image: %s", ct)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", err
	}

	img = imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)

	path := filepath.Join(dir, fmt.Sprintf("thumb_%s.jpg", uuid.NewString()[:8]))
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}

	return path, nil
}
