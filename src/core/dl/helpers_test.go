/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		title, artist, want string
	}{
		{"Tum Hi Ho", "Arijit Singh", "Tum Hi Ho - Arijit Singh.mp3"},
		{"Song: Remix!!", "A.R. Rahman", "Song Remix - AR Rahman.mp3"},
		{"slash/back\\slash", "quo\"te", "slashbackslash - quote.mp3"},
		{"Trail** ", "x", "Trail - x.mp3"},
		{"Café déjà vu", "Ñandú", "Café déjà vu - Ñandú.mp3"},
		{"", "", " - .mp3"},
	}

	for _, c := range cases {
		if got := SafeFileName(c.title, c.artist); got != c.want {
			t.Errorf("SafeFileName(%q, %q) = %q, want %q", c.title, c.artist, got, c.want)
		}
	}
}

func TestShortIDShape(t *testing.T) {
	a, b := shortID(), shortID()
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("shortID length = %d, %d; want 8", len(a), len(b))
	}
	if a == b {
		t.Error("consecutive shortIDs collided")
	}
}

func TestCleanupIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.mp3")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Cleanup(path); err != nil {
		t.Fatalf("first Cleanup: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("artifact survived Cleanup")
	}

	if err := Cleanup(path); err != nil {
		t.Errorf("second Cleanup: %v", err)
	}
	if err := Cleanup(""); err != nil {
		t.Errorf("Cleanup of empty path: %v", err)
	}
}
