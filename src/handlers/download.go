/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/core"
	"tgsaver/src/core/dl"
	"tgsaver/src/utils"
)

const (
	tooLongMsg     = "⚠️ Video too long (max 10 minutes)"
	fetchFailedMsg = "❌ Failed to fetch video info. Make sure the URL is valid."
	songFailedMsg  = "❌ Failed to fetch song details"
	unsupportedMsg = "❓ I don't recognize that link.\n\nSend a YouTube or JioSaavn URL, or use /yt and /saavn."
	noResultsMsg   = "❌ No songs found for your query"
	playlistTooBig = 10
)

// ytHandler handles the /yt command.
func (h *Modules) ytHandler(m *telegram.NewMessage) error {
	args := strings.TrimSpace(m.Args())
	if args == "" {
		_, err := m.Reply("Usage: <code>/yt &lt;youtube url&gt;</code>")
		return err
	}
	if !utils.IsYouTubeURL(args) {
		_, err := m.Reply("⚠️ That doesn't look like a YouTube URL.")
		return err
	}
	return h.ytFlow(m, args)
}

// ytFlow fetches video metadata and presents the quality menu.
func (h *Modules) ytFlow(m *telegram.NewMessage, url string) error {
	msg, err := m.Reply("🔍 Fetching video info...")
	if err != nil {
		return err
	}

	meta, err := h.pipeline.Video.GetMetadata(context.Background(), url)
	if err != nil {
		_, err = msg.Edit(fetchFailedMsg)
		return err
	}

	if err := h.pipeline.CheckDuration(meta); err != nil {
		_, err = msg.Edit(tooLongMsg)
		return err
	}

	token := h.tickets.Issue(url)
	keyboard := core.QualityKeyboard(meta, token)

	caption := fmt.Sprintf(
		"🎬 <b>%s</b>\n👤 %s\n⏱ %s\n\nSelect quality:",
		meta.Title, meta.Uploader, utils.SecToMin(meta.Duration),
	)

	_, err = msg.Edit(caption, telegram.SendOptions{ReplyMarkup: keyboard})
	return err
}

// saavnHandler handles the /saavn command.
func (h *Modules) saavnHandler(m *telegram.NewMessage) error {
	args := strings.TrimSpace(m.Args())
	if args == "" {
		_, err := m.Reply("Usage: <code>/saavn &lt;song name or url&gt;</code>")
		return err
	}
	return h.saavnFlow(m, args)
}

// saavnFlow routes a saavn query: playlist link, song link, or free-text search.
func (h *Modules) saavnFlow(m *telegram.NewMessage, query string) error {
	if utils.IsSaavnPlaylistURL(query) {
		return h.saavnPlaylist(m, query)
	}
	if utils.IsSaavnURL(query) {
		return h.saavnDirect(m, query)
	}
	return h.saavnSearch(m, query)
}

// saavnDirect skips the selection menu for a direct song link.
func (h *Modules) saavnDirect(m *telegram.NewMessage, link string) error {
	msg, err := m.Reply("🎵 Fetching song...")
	if err != nil {
		return err
	}

	song, err := h.pipeline.Songs.ResolveByLink(context.Background(), link)
	if err != nil {
		_, err = msg.Edit(songFailedMsg)
		return err
	}

	return h.deliverSong(msg, song)
}

// saavnPlaylist enumerates a playlist and offers each track as a button.
func (h *Modules) saavnPlaylist(m *telegram.NewMessage, link string) error {
	msg, err := m.Reply("📜 Fetching playlist...")
	if err != nil {
		return err
	}

	songs, err := h.pipeline.Songs.Playlist(context.Background(), link)
	if err != nil || len(songs) == 0 {
		_, err = msg.Edit("❌ Failed to fetch playlist details")
		return err
	}

	if len(songs) > playlistTooBig {
		songs = songs[:playlistTooBig]
	}

	keyboard := core.SongKeyboard(songs, h.issueSongTickets(songs))
	_, err = msg.Edit(
		fmt.Sprintf("📜 <b>Playlist</b> (%d tracks shown)\nSelect a song:", len(songs)),
		telegram.SendOptions{ReplyMarkup: keyboard},
	)
	return err
}

// saavnSearch presents up to five matches for a free-text query.
func (h *Modules) saavnSearch(m *telegram.NewMessage, query string) error {
	msg, err := m.Reply("🔎 Searching Saavn...")
	if err != nil {
		return err
	}

	songs := h.pipeline.Songs.Search(context.Background(), query)
	if len(songs) == 0 {
		_, err = msg.Edit(noResultsMsg)
		return err
	}

	keyboard := core.SongKeyboard(songs, h.issueSongTickets(songs))
	_, err = msg.Edit(
		fmt.Sprintf("🔎 Results for <b>%s</b>:", query),
		telegram.SendOptions{ReplyMarkup: keyboard},
	)
	return err
}

// issueSongTickets mints one callback ticket per song, keyed to its page link.
func (h *Modules) issueSongTickets(songs []dl.SongMetadata) []string {
	tokens := make([]string, len(songs))
	for i, song := range songs {
		tokens[i] = h.tickets.Issue(song.URL)
	}
	return tokens
}

// textWatcher routes bare messages containing a supported URL.
func (h *Modules) textWatcher(m *telegram.NewMessage) error {
	text := strings.TrimSpace(m.Text())
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}
	// plain text in groups is ignored; only links addressed to the bot
	if !m.IsPrivate() && !utils.IsYouTubeURL(text) && !utils.IsSaavnURL(text) {
		return nil
	}

	switch {
	case utils.IsYouTubeURL(text):
		return h.ytFlow(m, text)
	case utils.IsSaavnURL(text):
		return h.saavnFlow(m, text)
	default:
		_, err := m.Reply(unsupportedMsg)
		return err
	}
}
