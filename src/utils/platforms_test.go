/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package utils

import "testing"

func TestIsYouTubeURL(t *testing.T) {
	yes := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtube.com/shorts/abc123",
	}
	no := []string{
		"https://www.jiosaavn.com/song/tum-hi-ho/abc",
		"https://example.com/watch?v=x",
		"just some text",
	}

	for _, u := range yes {
		if !IsYouTubeURL(u) {
			t.Errorf("IsYouTubeURL(%q) = false", u)
		}
	}
	for _, u := range no {
		if IsYouTubeURL(u) {
			t.Errorf("IsYouTubeURL(%q) = true", u)
		}
	}
}

func TestIsSaavnURL(t *testing.T) {
	if !IsSaavnURL("https://www.jiosaavn.com/song/tum-hi-ho/abc") {
		t.Error("song link not recognized")
	}
	if IsSaavnURL("https://youtu.be/abc") {
		t.Error("youtube link misrecognized as saavn")
	}

	if !IsSaavnPlaylistURL("https://www.jiosaavn.com/featured/romantic-hits/xyz") {
		t.Error("playlist link not recognized")
	}
	if IsSaavnPlaylistURL("https://www.jiosaavn.com/song/tum-hi-ho/abc") {
		t.Error("song link misrecognized as playlist")
	}
}
