/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const audioBitrate = "192K"

// videoFormats maps a quality key to the yt-dlp format-selection expression
// used to fetch it. Audio-only requests bypass this table entirely.
var videoFormats = map[string]string{
	"best": "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
	"1080": "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080]",
	"720":  "bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720]",
	"480":  "bestvideo[height<=480][ext=mp4]+bestaudio[ext=m4a]/best[height<=480]",
}

// StreamCandidate is one downloadable format of a video.
type StreamCandidate struct {
	FormatID string
	Ext      string
	Quality  string
	Filesize int64 // 0 when the engine does not report one
}

// VideoMetadata is the request-scoped projection of a video: identity plus
// the candidate streams split into progressive and audio-only buckets.
type VideoMetadata struct {
	URL       string
	Title     string
	Duration  int
	Uploader  string
	Thumbnail string
	Video     []StreamCandidate
	Audio     []StreamCandidate
}

type ytFormat struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	Height   int     `json:"height"`
	ABR      float64 `json:"abr"`
	Filesize int64   `json:"filesize"`
	Vcodec   string  `json:"vcodec"`
	Acodec   string  `json:"acodec"`
}

type ytInfo struct {
	Title     string     `json:"title"`
	Duration  float64    `json:"duration"`
	Uploader  string     `json:"uploader"`
	Thumbnail string     `json:"thumbnail"`
	Formats   []ytFormat `json:"formats"`
}

// VideoSource extracts metadata and fetches media through the external
// yt-dlp engine.
type VideoSource struct {
	DownloadsDir string
	CookiesFile  string
	MaxFileSize  int64
}

// NewVideoSource creates a VideoSource writing into downloadsDir with the
// given engine-side size ceiling.
func NewVideoSource(downloadsDir, cookiesFile string, maxFileSize int64) *VideoSource {
	return &VideoSource{
		DownloadsDir: downloadsDir,
		CookiesFile:  cookiesFile,
		MaxFileSize:  maxFileSize,
	}
}

// GetMetadata runs the engine in no-download mode and classifies the
// available formats. Any engine failure maps to ErrNotFound.
func (v *VideoSource) GetMetadata(ctx context.Context, url string) (VideoMetadata, error) {
	params := []string{"-J", "--no-warnings"}
	if v.cookieFile() != "" {
		params = append(params, "--cookies", v.cookieFile())
	}
	params = append(params, url)

	cmd := exec.CommandContext(ctx, "yt-dlp", params...)
	output, err := cmd.Output()
	if err != nil {
		return VideoMetadata{}, fmt.Errorf("%w: %s", ErrNotFound, engineError(err))
	}

	var info ytInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return VideoMetadata{}, fmt.Errorf("%w: unreadable engine output", ErrNotFound)
	}

	meta := VideoMetadata{
		URL:       url,
		Title:     info.Title,
		Duration:  int(info.Duration),
		Uploader:  info.Uploader,
		Thumbnail: info.Thumbnail,
	}
	meta.Video, meta.Audio = classifyFormats(info.Formats)

	return meta, nil
}

// classifyFormats buckets engine formats into progressive (video and audio
// codecs present) and audio-only (audio codec only). Formats with neither
// are discarded.
func classifyFormats(formats []ytFormat) (video, audio []StreamCandidate) {
	for _, f := range formats {
		hasVideo := f.Vcodec != "" && f.Vcodec != "none"
		hasAudio := f.Acodec != "" && f.Acodec != "none"

		switch {
		case hasVideo && hasAudio:
			video = append(video, StreamCandidate{
				FormatID: f.FormatID,
				Ext:      f.Ext,
				Quality:  fmt.Sprintf("%dp", f.Height),
				Filesize: f.Filesize,
			})
		case hasAudio:
			audio = append(audio, StreamCandidate{
				FormatID: f.FormatID,
				Ext:      f.Ext,
				Quality:  fmt.Sprintf("%dkbps", int(f.ABR)),
				Filesize: f.Filesize,
			})
		}
	}
	return video, audio
}

// HasQuality reports whether any progressive stream matches the quality key
// (e.g. "720" matches a "720p" candidate).
func (m VideoMetadata) HasQuality(key string) bool {
	for _, s := range m.Video {
		if s.Quality == key+"p" {
			return true
		}
	}
	return false
}

// formatExpression resolves a quality key through the fixed table.
func formatExpression(quality string) string {
	if expr, ok := videoFormats[quality]; ok {
		return expr
	}
	return "best[ext=mp4]"
}

// buildParams constructs the engine invocation for a fetch. The size ceiling
// is handed to the engine itself so oversized downloads abort mid-transfer.
func (v *VideoSource) buildParams(url, quality string, audioOnly bool) []string {
	outputTemplate := filepath.Join(v.DownloadsDir, "%(id)s_"+shortID()+".%(ext)s")

	params := []string{
		"--no-warnings",
		"--quiet",
		"--retries", "2",
		"--no-part",
		"--socket-timeout", "10",
		"--max-filesize", strconv.FormatInt(v.MaxFileSize, 10),
		"-o", outputTemplate,
	}

	if audioOnly {
		params = append(params,
			"-f", "bestaudio/best",
			"--extract-audio",
			"--audio-format", "mp3",
			"--audio-quality", audioBitrate,
		)
	} else {
		params = append(params,
			"-f", formatExpression(quality),
			"--merge-output-format", "mp4",
		)
	}

	if v.cookieFile() != "" {
		params = append(params, "--cookies", v.cookieFile())
	}

	return append(params, url, "--print", "after_move:filepath")
}

// Download fetches the video (or its audio track) and returns the artifact
// path. Audio results always carry the .mp3 extension even when the engine
// reports its pre-transcode name.
func (v *VideoSource) Download(ctx context.Context, url, quality string, audioOnly bool) (string, error) {
	if url == "" {
		return "", ErrMissingSource
	}

	params := v.buildParams(url, quality, audioOnly)
	cmd := exec.CommandContext(ctx, "yt-dlp", params...)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp fetch failed: %s", engineError(err))
	}

	path := strings.TrimSpace(string(output))
	if path == "" {
		return "", errors.New("the engine did not report an output path")
	}

	if audioOnly {
		path = normalizeAudioExt(path)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("downloaded file not found at %s", path)
	}

	return path, nil
}

// normalizeAudioExt rewrites the engine-reported path to the transcoded
// .mp3 name.
func normalizeAudioExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"
}

func (v *VideoSource) cookieFile() string {
	if v.CookiesFile != "" && exists(v.CookiesFile) {
		return v.CookiesFile
	}
	return ""
}

// engineError extracts stderr from a failed engine invocation.
func engineError(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
			return msg
		}
		return fmt.Sprintf("exit code %d", exitErr.ExitCode())
	}
	return err.Error()
}
