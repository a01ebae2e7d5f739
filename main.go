/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package main

import (
	"context"
	"log"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src"
	"tgsaver/src/config"
	"tgsaver/src/core/db"
)

// main initializes the configuration, database, and Telegram client, then
// starts the bot and waits for a shutdown signal.
func main() {
	if err := config.LoadConfig(); err != nil {
		panic(err)
	}

	clientConfig := tg.ClientConfig{
		AppID:        config.Conf.ApiId,
		AppHash:      config.Conf.ApiHash,
		FloodHandler: handleFlood,
		SessionName:  "bot",
	}

	client, err := tg.NewClient(clientConfig)
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}

	_, err = client.Conn()
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	err = client.LoginBot(config.Conf.Token)
	if err != nil {
		log.Fatalf("failed to login: %v", err)
	}

	err = src.Init(client)
	if err != nil {
		log.Fatalf("failed to init: %v", err)
	}

	client.Log.Info("The bot is running as @" + client.Me().Username)
	if config.Conf.LoggerId != 0 {
		_, _ = client.SendMessage(config.Conf.LoggerId, "The bot has started!")
	}
	client.Idle()
	log.Println("The bot is shutting down...")
	if db.Instance != nil {
		_ = db.Instance.Close(context.Background())
	}
	_ = client.Stop()
}

// handleFlood manages flood wait errors by pausing execution for the
// specified duration. It returns true if a flood wait error was handled.
func handleFlood(err error) bool {
	if wait := tg.GetFloodWait(err); wait > 0 {
		log.Printf("A flood wait has been detected. Sleeping for %ds.", wait)
		time.Sleep(time.Duration(wait) * time.Second)
		return true
	}
	return false
}
