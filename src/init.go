/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package src

import (
	"context"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/config"
	"tgsaver/src/core"
	"tgsaver/src/core/db"
	"tgsaver/src/core/dl"
	"tgsaver/src/handlers"
)

const ticketTTL = time.Hour

// Init wires the per-process dependencies and registers the handlers.
func Init(client *tg.Client) error {
	if err := db.InitDatabase(context.Background(), config.Conf.MongoUri); err != nil {
		return err
	}

	pipeline := &dl.Pipeline{
		Video:       dl.NewVideoSource(config.Conf.DownloadsDir, config.Conf.CookiesFile, config.Conf.MaxFileSize),
		Songs:       dl.NewAudioCatalogSource(config.Conf.SaavnApiUrl, config.Conf.DownloadsDir, config.Conf.MaxFileSize),
		MaxFileSize: config.Conf.MaxFileSize,
		MaxDuration: config.Conf.MaxDuration,
	}
	tickets := core.NewTicketStore(ticketTTL)

	handlers.LoadModules(client, pipeline, tickets)
	return nil
}
