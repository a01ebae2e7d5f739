/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func searchBody(n int) string {
	var results []string
	for i := 0; i < n; i++ {
		results = append(results, fmt.Sprintf(
			`{"id":"s%d","name":"Song %d","url":"https://jiosaavn.com/song/s%d","duration":200}`, i, i, i))
	}
	return `{"data":{"results":[` + strings.Join(results, ",") + `]}}`
}

func TestSearchCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search/songs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(searchBody(7)))
	}))
	defer server.Close()

	a := NewAudioCatalogSource(server.URL, t.TempDir(), 50*1024*1024)
	songs := a.Search(context.Background(), "anything")

	if len(songs) != 5 {
		t.Errorf("Search returned %d songs, want 5", len(songs))
	}
}

func TestSearchFailureIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewAudioCatalogSource(server.URL, t.TempDir(), 50*1024*1024)
	if songs := a.Search(context.Background(), "anything"); len(songs) != 0 {
		t.Errorf("Search on server error returned %d songs", len(songs))
	}
}

func TestResolveByLinkProjection(t *testing.T) {
	body := `{"data":[{
		"id":"abc",
		"name":"Tum Hi Ho",
		"url":"https://jiosaavn.com/song/abc",
		"duration":262,
		"primaryArtists":[{"name":"Arijit Singh"},{"name":"Mithoon"}],
		"album":{"name":""},
		"image":[{"quality":"50x50","url":"http://img/50"},{"quality":"500x500","url":"http://img/500"}],
		"downloadUrl":[{"quality":"96kbps","url":"http://dl/96"},{"quality":"320kbps","url":"http://dl/320"}]
	}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	a := NewAudioCatalogSource(server.URL, t.TempDir(), 50*1024*1024)
	song, err := a.ResolveByLink(context.Background(), "https://jiosaavn.com/song/abc")
	if err != nil {
		t.Fatal(err)
	}

	if song.Artist != "Arijit Singh, Mithoon" {
		t.Errorf("Artist = %q", song.Artist)
	}
	if song.Album != "Unknown" {
		t.Errorf("Album = %q, want the placeholder", song.Album)
	}
	if song.Thumbnail != "http://img/500" {
		t.Errorf("Thumbnail = %q, want the last entry", song.Thumbnail)
	}
	if song.DownloadURL != "http://dl/320" || song.Quality != "320kbps" {
		t.Errorf("DownloadURL = %q (%s), want the last entry", song.DownloadURL, song.Quality)
	}
}

func TestResolveByLinkEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	a := NewAudioCatalogSource(server.URL, t.TempDir(), 50*1024*1024)
	if _, err := a.ResolveByLink(context.Background(), "https://jiosaavn.com/song/gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDownloadMissingSource(t *testing.T) {
	a := NewAudioCatalogSource("http://unused", t.TempDir(), 50*1024*1024)

	_, err := a.Download(context.Background(), SongMetadata{ID: "abc"})
	if !errors.Is(err, ErrMissingSource) {
		t.Errorf("err = %v, want ErrMissingSource", err)
	}
}

func TestDownloadDeclaredTooLarge(t *testing.T) {
	payload := make([]byte, 2048)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "2048")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	a := NewAudioCatalogSource("http://unused", dir, 1024)

	_, err := a.Download(context.Background(), SongMetadata{ID: "big", DownloadURL: server.URL + "/big.mp3"})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if !errors.Is(err, ErrPolicyRejected) {
		t.Error("ErrTooLarge does not wrap ErrPolicyRejected")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("rejected download left %d files on disk", len(entries))
	}
}

func TestDownloadUnknownLengthBypassesPrecheck(t *testing.T) {
	payload := make([]byte, 2048)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// flush before the body so the response goes out chunked,
		// with no Content-Length
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	a := NewAudioCatalogSource("http://unused", t.TempDir(), 1024)

	path, err := a.Download(context.Background(), SongMetadata{ID: "chunked", DownloadURL: server.URL + "/chunked.mp3"})
	if err != nil {
		t.Fatalf("download without a declared length failed the pre-check: %v", err)
	}
	t.Cleanup(func() { _ = Cleanup(path) })

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(len(payload)) {
		t.Errorf("artifact is %d bytes, want %d", info.Size(), len(payload))
	}
}

func TestDownloadWritesArtifact(t *testing.T) {
	content := []byte("not really an mp3 but enough bytes to store")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	}))
	defer server.Close()

	dir := t.TempDir()
	a := NewAudioCatalogSource("http://unused", dir, 50*1024*1024)

	song := SongMetadata{ID: "abc", Title: "T", Artist: "A", Album: "B", DownloadURL: server.URL + "/abc.mp3"}
	path, err := a.Download(context.Background(), song)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = Cleanup(path) })

	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".mp3") {
		t.Errorf("artifact path %q outside downloads dir or wrong extension", path)
	}
	if !strings.Contains(path, "abc_") {
		t.Errorf("artifact path %q lacks the per-request suffix", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() < int64(len(content)) {
		t.Errorf("artifact is %d bytes, want at least %d", info.Size(), len(content))
	}
}

func TestDownloadUniqueArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	}))
	defer server.Close()

	a := NewAudioCatalogSource("http://unused", t.TempDir(), 50*1024*1024)
	song := SongMetadata{ID: "same", DownloadURL: server.URL + "/same.mp3"}

	first, err := a.Download(context.Background(), song)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Download(context.Background(), song)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Errorf("two downloads of the same song shared the path %q", first)
	}
}
