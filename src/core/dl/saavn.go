/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/bogem/id3v2/v2"
)

const (
	searchLimit   = 5
	copyChunkSize = 8 * 1024
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// SongMetadata is the catalog's projection of one song.
type SongMetadata struct {
	ID          string
	URL         string
	Title       string
	Artist      string // joined display name
	Album       string
	Duration    int
	Thumbnail   string // highest-resolution entry
	DownloadURL string // highest-quality entry
	Quality     string
}

type apiEntry struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

type apiArtist struct {
	Name string `json:"name"`
}

type apiSong struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	URL            string      `json:"url"`
	Duration       int         `json:"duration"`
	PrimaryArtists []apiArtist `json:"primaryArtists"`
	Album          struct {
		Name string `json:"name"`
	} `json:"album"`
	Image       []apiEntry `json:"image"`
	DownloadURL []apiEntry `json:"downloadUrl"`
}

// AudioCatalogSource is the stateless adapter over the Saavn-compatible
// catalog API.
type AudioCatalogSource struct {
	ApiUrl       string
	DownloadsDir string
	MaxFileSize  int64

	meta  *http.Client // search / by-link / playlist calls
	media *http.Client // streamed song fetch
}

// NewAudioCatalogSource creates an adapter against apiUrl writing into
// downloadsDir.
func NewAudioCatalogSource(apiUrl, downloadsDir string, maxFileSize int64) *AudioCatalogSource {
	return &AudioCatalogSource{
		ApiUrl:       strings.TrimRight(apiUrl, "/"),
		DownloadsDir: downloadsDir,
		MaxFileSize:  maxFileSize,
		meta:         &http.Client{Timeout: 10 * time.Second},
		media:        &http.Client{Timeout: 30 * time.Second},
	}
}

// projectSong maps a raw catalog result onto SongMetadata. Image and
// download-URL lists are ordered ascending, so the last entry is the best.
func projectSong(s apiSong) SongMetadata {
	names := make([]string, 0, len(s.PrimaryArtists))
	for _, a := range s.PrimaryArtists {
		names = append(names, a.Name)
	}

	album := s.Album.Name
	if album == "" {
		album = "Unknown"
	}

	song := SongMetadata{
		ID:       s.ID,
		URL:      s.URL,
		Title:    s.Name,
		Artist:   strings.Join(names, ", "),
		Album:    album,
		Duration: s.Duration,
	}

	if len(s.Image) > 0 {
		song.Thumbnail = s.Image[len(s.Image)-1].URL
	}
	if len(s.DownloadURL) > 0 {
		best := s.DownloadURL[len(s.DownloadURL)-1]
		song.DownloadURL = best.URL
		song.Quality = best.Quality
	}

	return song
}

func (a *AudioCatalogSource) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	fullURL := fmt.Sprintf("%s%s?%s", a.ApiUrl, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create the catalog request: %w", err)
	}

	resp, err := a.meta.Do(req)
	if err != nil {
		return fmt.Errorf("the catalog request failed: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected catalog status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode the catalog response: %w", err)
	}
	return nil
}

// Search queries the catalog's text search. It never fails to the caller: any
// transport or parse error yields an empty result set.
func (a *AudioCatalogSource) Search(ctx context.Context, query string) []SongMetadata {
	var data struct {
		Data struct {
			Results []apiSong `json:"results"`
		} `json:"data"`
	}

	params := url.Values{"query": {query}, "limit": {fmt.Sprint(searchLimit)}}
	if err := a.getJSON(ctx, "/api/search/songs", params, &data); err != nil {
		gologging.Warn("saavn search failed: " + err.Error())
		return nil
	}

	results := data.Data.Results
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}

	songs := make([]SongMetadata, 0, len(results))
	for _, s := range results {
		songs = append(songs, projectSong(s))
	}
	return songs
}

// ResolveByLink fetches song details for a catalog link, taking the first
// result only. Empty or malformed responses map to ErrNotFound.
func (a *AudioCatalogSource) ResolveByLink(ctx context.Context, songURL string) (SongMetadata, error) {
	var data struct {
		Data []apiSong `json:"data"`
	}

	if err := a.getJSON(ctx, "/api/songs", url.Values{"link": {songURL}}, &data); err != nil {
		return SongMetadata{}, fmt.Errorf("%w: %s", ErrNotFound, err.Error())
	}

	if len(data.Data) == 0 {
		return SongMetadata{}, ErrNotFound
	}

	return projectSong(data.Data[0]), nil
}

// Playlist enumerates a playlist's songs. Entries are partial: no duration or
// download URL, enumeration only.
func (a *AudioCatalogSource) Playlist(ctx context.Context, playlistURL string) ([]SongMetadata, error) {
	var data struct {
		Data struct {
			Songs []apiSong `json:"songs"`
		} `json:"data"`
	}

	if err := a.getJSON(ctx, "/api/playlists", url.Values{"link": {playlistURL}}, &data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, err.Error())
	}

	songs := make([]SongMetadata, 0, len(data.Data.Songs))
	for _, s := range data.Data.Songs {
		songs = append(songs, projectSong(s))
	}
	return songs, nil
}

// Download streams the song to disk and tags it. The declared content length
// is checked against the ceiling before any byte is written; servers that
// omit the header bypass that pre-check and are caught downstream, if at all,
// by the transport's own attachment limit.
func (a *AudioCatalogSource) Download(ctx context.Context, song SongMetadata) (string, error) {
	if song.DownloadURL == "" {
		return "", ErrMissingSource
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, song.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create the fetch request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.media.Do(req)
	if err != nil {
		return "", fmt.Errorf("the song fetch failed: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected fetch status: %s", resp.Status)
	}

	// an absent header reports -1 and bypasses the pre-check
	if resp.ContentLength > a.MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes declared", ErrTooLarge, resp.ContentLength)
	}

	path := filepath.Join(a.DownloadsDir, fmt.Sprintf("%s_%s.mp3", song.ID, shortID()))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create the artifact: %w", err)
	}

	if _, err := io.CopyBuffer(file, resp.Body, make([]byte, copyChunkSize)); err != nil {
		_ = file.Close()
		_ = Cleanup(path)
		return "", fmt.Errorf("the song stream was interrupted: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = Cleanup(path)
		return "", fmt.Errorf("failed to finish the artifact: %w", err)
	}

	if err := tagAudioFile(path, song); err != nil {
		gologging.Warn("tagging failed for " + path + ": " + err.Error())
	}

	return path, nil
}

// tagAudioFile writes ID3 title/artist/album tags. Best effort: the download
// stays valid when tagging fails.
func tagAudioFile(path string, song SongMetadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer func(tag *id3v2.Tag) {
		_ = tag.Close()
	}(tag)

	tag.SetTitle(song.Title)
	tag.SetArtist(song.Artist)
	tag.SetAlbum(song.Album)

	return tag.Save()
}
