/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package handlers

import (
	"fmt"
	"runtime"
	"time"

	"github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/core/db"
)

// startHandler handles the /start command.
func (h *Modules) startHandler(m *telegram.NewMessage) error {
	if db.Instance != nil {
		chatID := m.ChannelID()
		isPrivate := m.IsPrivate()
		go func() {
			ctx, cancel := db.Ctx()
			defer cancel()
			if isPrivate {
				_ = db.Instance.AddUser(ctx, chatID)
			} else {
				_ = db.Instance.AddChat(ctx, chatID)
			}
		}()
	}

	response := fmt.Sprintf(
		"🎬 <b>YouTube & 🎵 Saavn Downloader Bot</b>\n\n"+
			"Hello %s! I can download:\n"+
			"• YouTube videos (up to 50MB)\n"+
			"• YouTube Shorts\n"+
			"• JioSaavn songs in high quality\n"+
			"• JioSaavn albums & playlists\n\n"+
			"<b>Commands:</b>\n"+
			"/yt &lt;url&gt; - Download YouTube video\n"+
			"/saavn &lt;url or search&gt; - Download Saavn music\n"+
			"/help - Show help message\n\n"+
			"Or simply send me a URL directly!",
		m.Sender.FirstName,
	)

	_, err := m.Reply(response)
	return err
}

// helpHandler handles the /help command.
func (h *Modules) helpHandler(m *telegram.NewMessage) error {
	helpText := "📖 <b>How to use:</b>\n\n" +
		"<b>YouTube:</b>\n" +
		"1. Send /yt followed by a video URL\n" +
		"2. Choose quality (720p, 1080p, or Audio)\n" +
		"3. Wait for the download\n\n" +
		"<b>Saavn:</b>\n" +
		"1. Send /saavn followed by a song name or URL\n" +
		"2. Select from the search results\n" +
		"3. Get a high-quality MP3\n\n" +
		"<b>Examples:</b>\n" +
		"<code>/yt https://youtube.com/watch?v=...</code>\n" +
		"<code>/saavn Tere Vaaste</code>\n" +
		"<code>/saavn https://jiosaavn.com/song/...</code>\n\n" +
		"⚠️ Note: files larger than 50MB cannot be sent due to Telegram limits."

	_, err := m.Reply(helpText)
	return err
}

// pingHandler handles the /ping command.
func (h *Modules) pingHandler(m *telegram.NewMessage) error {
	start := time.Now()
	msg, err := m.Reply("⏱️ Pinging...")
	if err != nil {
		return err
	}

	latency := time.Since(start).Milliseconds()
	uptime := time.Since(startTime).Truncate(time.Second)
	response := fmt.Sprintf(
		"⏱️ <b>Latency:</b> <code>%d ms</code>\n"+
			"🕒 <b>Uptime:</b> <code>%s</code>\n"+
			"⚙️ <b>Go Routines:</b> <code>%d</code>",
		latency, uptime, runtime.NumGoroutine(),
	)

	_, err = msg.Edit(response)
	return err
}

// privacyHandler handles the /privacy command.
func (h *Modules) privacyHandler(m *telegram.NewMessage) error {
	botName := m.Client.Me().FirstName

	text := fmt.Sprintf(
		"<u><b>Privacy Policy for %s:</b></u>\n\n"+
			"<b>1. What We Collect:</b>\n- Only your Telegram <b>user ID</b> and <b>chat ID</b>, used to deliver downloads and announcements.\n\n"+
			"<b>2. Files:</b>\n- Downloaded media is stored only for the seconds it takes to send it to you, then deleted. Nothing is retained.\n\n"+
			"<b>3. Data Sharing:</b>\n- Nothing is shared with third parties.\n\n"+
			"<b>4. Your Rights:</b>\n- Ask the owner to remove your IDs at any time, or simply block the bot.",
		botName,
	)

	_, err := m.Reply(text, telegram.SendOptions{LinkPreview: false})
	return err
}
