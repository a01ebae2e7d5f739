/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package handlers

import (
	tg "github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/config"
)

// isOwner restricts a command to the configured owner.
func isOwner(m *tg.NewMessage) bool {
	return config.Conf.OwnerId != 0 && m.SenderID() == config.Conf.OwnerId
}
