/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Laky-64/gologging"
	"github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/config"
	"tgsaver/src/core"
	"tgsaver/src/core/dl"
)

const (
	downloadingMsg = "⬇️ Downloading... this may take a moment"
	dlFailedMsg    = "❌ Download failed"
	tooLargeMsg    = "❌ File too large to send via Telegram (limit: 50MB)"
	sendFailedMsg  = "❌ Failed to send file"
	expiredMsg     = "⌛ This menu has expired. Send the link again."
)

var errSendFailed = errors.New("send failed")

// downloadErrorText maps a pipeline failure to its user-facing message.
func downloadErrorText(err error) string {
	switch {
	case errors.Is(err, dl.ErrTooLong):
		return tooLongMsg
	case errors.Is(err, dl.ErrTooLarge):
		return tooLargeMsg
	case errors.Is(err, dl.ErrNotFound):
		return fetchFailedMsg
	case errors.Is(err, dl.ErrMissingSource):
		return songFailedMsg
	case errors.Is(err, errSendFailed):
		return sendFailedMsg
	default:
		return dlFailedMsg
	}
}

// qualityCallback serves a quality-menu button press: the ticket in the
// payload is resolved back to the video URL, metadata is re-fetched, and the
// selected stream is downloaded and sent. The artifact is removed whether or
// not the send succeeds.
func (h *Modules) qualityCallback(cb *telegram.CallbackQuery) error {
	payload, err := core.DecodeQuality(cb.DataString())
	if err != nil {
		_, _ = cb.Answer("❌ Invalid selection.", &telegram.CallbackOptions{Alert: true})
		return nil
	}

	url, ok := h.tickets.Resolve(payload.Identifier)
	if !ok {
		_, _ = cb.Answer(expiredMsg, &telegram.CallbackOptions{Alert: true})
		return nil
	}

	_, _ = cb.Answer("⬇️ Download started", &telegram.CallbackOptions{})
	_, _ = cb.Edit(downloadingMsg)

	ctx := context.Background()
	meta, err := h.pipeline.Video.GetMetadata(ctx, url)
	if err != nil {
		gologging.Warn("video metadata refetch failed: " + err.Error())
		_, _ = cb.Edit(fetchFailedMsg)
		return nil
	}

	audioOnly := payload.Selector == "audio"
	path, err := h.pipeline.FetchVideo(ctx, meta, payload.Selector, audioOnly)
	if err != nil {
		gologging.Warn("video download failed: " + err.Error())
		_, _ = cb.Edit(downloadErrorText(err))
		return nil
	}
	defer func() { _ = dl.Cleanup(path) }()

	opts := &telegram.MediaOptions{
		Caption: fmt.Sprintf("🎬 <b>%s</b>\n👤 %s", meta.Title, meta.Uploader),
	}
	if thumb, err := core.FetchThumbnail(meta.Thumbnail, config.Conf.DownloadsDir); err == nil {
		opts.Thumb = thumb
		defer func() { _ = dl.Cleanup(thumb) }()
	}
	if audioOnly {
		opts.FileName = dl.SafeFileName(meta.Title, meta.Uploader)
		opts.Attributes = []telegram.DocumentAttribute{
			&telegram.DocumentAttributeAudio{
				Title:     meta.Title,
				Performer: meta.Uploader,
				Duration:  int32(meta.Duration),
			},
		}
	}

	if _, err := cb.Client.SendMedia(cb.GetChatID(), path, opts); err != nil {
		gologging.Error("send failed: " + err.Error())
		_, _ = cb.Edit(sendFailedMsg)
		return nil
	}

	_, _ = cb.Delete()
	return nil
}

// formatCallback serves a song-picker button press.
func (h *Modules) formatCallback(cb *telegram.CallbackQuery) error {
	identifier, err := core.DecodeFormat(cb.DataString())
	if err != nil {
		_, _ = cb.Answer("❌ Invalid selection.", &telegram.CallbackOptions{Alert: true})
		return nil
	}

	link, ok := h.tickets.Resolve(identifier)
	if !ok {
		_, _ = cb.Answer(expiredMsg, &telegram.CallbackOptions{Alert: true})
		return nil
	}

	_, _ = cb.Answer("⬇️ Download started", &telegram.CallbackOptions{})
	_, _ = cb.Edit(downloadingMsg)

	ctx := context.Background()
	song, err := h.pipeline.Songs.ResolveByLink(ctx, link)
	if err != nil {
		gologging.Warn("song resolve failed: " + err.Error())
		_, _ = cb.Edit(songFailedMsg)
		return nil
	}

	if err := h.sendSong(cb.Client, cb.GetChatID(), song); err != nil {
		_, _ = cb.Edit(downloadErrorText(err))
		return nil
	}

	_, _ = cb.Delete()
	return nil
}

// deliverSong downloads and sends an already-resolved song, editing msg with
// progress and failure text. Used by the direct-link path that skips the menu.
func (h *Modules) deliverSong(msg *telegram.NewMessage, song dl.SongMetadata) error {
	_, _ = msg.Edit(downloadingMsg)

	if err := h.sendSong(msg.Client, msg.ChannelID(), song); err != nil {
		_, err = msg.Edit(downloadErrorText(err))
		return err
	}

	_, _ = msg.Delete()
	return nil
}

// sendSong fetches a song artifact and uploads it as a tagged audio document.
// The artifact (and thumbnail) are removed whether or not the send succeeds.
func (h *Modules) sendSong(client *telegram.Client, chatID int64, song dl.SongMetadata) error {
	path, err := h.pipeline.FetchSong(context.Background(), song)
	if err != nil {
		gologging.Warn("song download failed: " + err.Error())
		return err
	}
	defer func() { _ = dl.Cleanup(path) }()

	opts := &telegram.MediaOptions{
		Caption:  fmt.Sprintf("🎵 <b>%s</b>\n👤 %s\n💿 %s", song.Title, song.Artist, song.Album),
		FileName: dl.SafeFileName(song.Title, song.Artist),
		Attributes: []telegram.DocumentAttribute{
			&telegram.DocumentAttributeAudio{
				Title:     song.Title,
				Performer: song.Artist,
				Duration:  int32(song.Duration),
			},
		},
	}
	if thumb, err := core.FetchThumbnail(song.Thumbnail, config.Conf.DownloadsDir); err == nil {
		opts.Thumb = thumb
		defer func() { _ = dl.Cleanup(thumb) }()
	}

	if _, err := client.SendMedia(chatID, path, opts); err != nil {
		gologging.Error("send failed: " + err.Error())
		return errSendFailed
	}
	return nil
}
