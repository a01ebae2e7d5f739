/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package core

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tgsaver/src/core/cache"
)

// TicketStore correlates a button press with the URL it was issued for.
// Payloads carry an opaque token instead of the raw URL, so the 64-byte
// callback-data limit and the delimiter ambiguity never apply to new buttons.
type TicketStore struct {
	tickets *cache.Cache[string]
}

// NewTicketStore creates a store whose tickets expire after ttl.
func NewTicketStore(ttl time.Duration) *TicketStore {
	return &TicketStore{tickets: cache.NewCache[string](ttl)}
}

// Issue stores url and returns a token to embed in a callback payload.
func (t *TicketStore) Issue(url string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	t.tickets.Set(token, url)
	return token
}

// Resolve maps an identifier back to a URL. Identifiers that are not known
// tokens are treated as raw URLs, so buttons issued before a restart (or by
// older builds that embedded the URL directly) still decode.
func (t *TicketStore) Resolve(identifier string) (string, bool) {
	if url, ok := t.tickets.Get(identifier); ok {
		return url, true
	}

	if strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://") {
		return identifier, true
	}

	return "", false
}
