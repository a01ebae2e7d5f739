/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package core

import (
	"fmt"

	"github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/config"
	"tgsaver/src/core/dl"
	"tgsaver/src/utils"
)

// QualityKeyboard builds the quality-selection menu for a video. Resolution
// rows are offered only when a matching progressive stream exists; the audio
// row is always present. The identifier slot carries an opaque ticket token.
func QualityKeyboard(meta dl.VideoMetadata, token string) *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard()

	for _, opt := range config.Conf.VideoQualities {
		if opt.Key == "audio" {
			continue
		}
		if len(meta.Video) == 0 {
			continue
		}
		if opt.Key != "best" && !meta.HasQuality(opt.Key) {
			continue
		}

		keyboard.AddRow(telegram.Button.Data(
			fmt.Sprintf("📹 %s", opt.Label),
			EncodeQuality(utils.YouTube, opt.Key, token),
		))
	}

	keyboard.AddRow(telegram.Button.Data(
		"🎵 Audio Only (MP3)",
		EncodeQuality(utils.YouTube, "audio", token),
	))

	return keyboard.Build()
}

// SongKeyboard builds the song-picker menu for search results; one row per
// song, each carrying its own ticket token.
func SongKeyboard(songs []dl.SongMetadata, tokens []string) *telegram.ReplyInlineMarkup {
	keyboard := telegram.NewKeyboard()

	for i, song := range songs {
		keyboard.AddRow(telegram.Button.Data(
			fmt.Sprintf("🎵 %s - %s", song.Title, song.Artist),
			EncodeFormat(tokens[i]),
		))
	}

	return keyboard.Build()
}
