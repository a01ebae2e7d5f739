/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package core

import (
	"strings"
	"testing"
	"time"
)

func TestTicketRoundTrip(t *testing.T) {
	store := NewTicketStore(time.Minute)

	url := "https://youtube.com/watch?v=dQw4w9WgXcQ"
	token := store.Issue(url)

	if strings.ContainsAny(token, "_-") {
		t.Errorf("token %q contains payload delimiters", token)
	}
	if payload := EncodeQuality("yt", "audio", token); len(payload) > 64 {
		t.Errorf("payload %q is %d bytes, over the callback-data limit", payload, len(payload))
	}

	got, ok := store.Resolve(token)
	if !ok || got != url {
		t.Fatalf("Resolve(%q) = %q, %t; want %q, true", token, got, ok, url)
	}
}

func TestTicketExpiry(t *testing.T) {
	store := NewTicketStore(10 * time.Millisecond)

	token := store.Issue("https://youtube.com/watch?v=abc")
	time.Sleep(30 * time.Millisecond)

	if _, ok := store.Resolve(token); ok {
		t.Error("expired ticket still resolves")
	}
}

func TestResolveRawURLFallback(t *testing.T) {
	store := NewTicketStore(time.Minute)

	for _, raw := range []string{"https://youtube.com/watch?v=abc", "http://example.com/x"} {
		got, ok := store.Resolve(raw)
		if !ok || got != raw {
			t.Errorf("Resolve(%q) = %q, %t; want the identifier itself", raw, got, ok)
		}
	}

	if _, ok := store.Resolve("not-a-token-not-a-url"); ok {
		t.Error("unknown non-URL identifier resolved")
	}
}
