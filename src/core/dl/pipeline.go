/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"context"
	"fmt"
	"os"
)

// VideoFetcher is the slice of VideoSource the pipeline drives.
type VideoFetcher interface {
	GetMetadata(ctx context.Context, url string) (VideoMetadata, error)
	Download(ctx context.Context, url, quality string, audioOnly bool) (string, error)
}

// SongFetcher is the slice of AudioCatalogSource the pipeline drives.
type SongFetcher interface {
	Search(ctx context.Context, query string) []SongMetadata
	ResolveByLink(ctx context.Context, songURL string) (SongMetadata, error)
	Playlist(ctx context.Context, playlistURL string) ([]SongMetadata, error)
	Download(ctx context.Context, song SongMetadata) (string, error)
}

// Pipeline orchestrates one request: policy gates around the adapters, and
// artifact ownership from fetch to cleanup. Adapters are injected so tests
// can observe that rejected requests never reach a fetch.
type Pipeline struct {
	Video VideoFetcher
	Songs SongFetcher

	MaxFileSize int64
	MaxDuration int // seconds, video only
}

// CheckDuration applies the duration gate. It runs before any fetch is
// attempted.
func (p *Pipeline) CheckDuration(meta VideoMetadata) error {
	if p.MaxDuration > 0 && meta.Duration > p.MaxDuration {
		return fmt.Errorf("%w: %ds", ErrTooLong, meta.Duration)
	}
	return nil
}

// FetchVideo runs the video pipeline for an already-resolved metadata:
// duration gate, engine fetch, then an independent on-disk size gate that
// protects against engine misestimation. Oversized artifacts are deleted
// before the failure is reported.
func (p *Pipeline) FetchVideo(ctx context.Context, meta VideoMetadata, quality string, audioOnly bool) (string, error) {
	if err := p.CheckDuration(meta); err != nil {
		return "", err
	}

	path, err := p.Video.Download(ctx, meta.URL, quality, audioOnly)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("artifact vanished after fetch: %w", err)
	}

	if info.Size() > p.MaxFileSize {
		_ = Cleanup(path)
		return "", fmt.Errorf("%w: %d bytes on disk", ErrTooLarge, info.Size())
	}

	return path, nil
}

// FetchSong runs the song pipeline. The adapter owns the ceiling pre-check
// and partial-file deletion.
func (p *Pipeline) FetchSong(ctx context.Context, song SongMetadata) (string, error) {
	return p.Songs.Download(ctx, song)
}
