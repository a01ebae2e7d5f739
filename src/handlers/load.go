/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Laky-64/gologging"
	tg "github.com/amarnathcjd/gogram/telegram"

	"tgsaver/src/core"
	"tgsaver/src/core/dl"
)

var startTime = time.Now()

const genericErrorReply = "⚠️ An error occurred. Please try again later."

// Modules holds the injected per-process dependencies the handlers run on.
type Modules struct {
	pipeline *dl.Pipeline
	tickets  *core.TicketStore
}

// LoadModules registers all handlers on the client.
func LoadModules(c *tg.Client, pipeline *dl.Pipeline, tickets *core.TicketStore) {
	_, _ = c.UpdatesGetState()

	h := &Modules{pipeline: pipeline, tickets: tickets}

	c.On("command:start", guard(h.startHandler))
	c.On("command:help", guard(h.helpHandler))
	c.On("command:ping", guard(h.pingHandler))
	c.On("command:privacy", guard(h.privacyHandler))

	c.On("command:yt", guard(h.ytHandler))
	c.On("command:saavn", guard(h.saavnHandler))

	c.On("command:stats", guard(h.statsHandler), tg.FilterFunc(isOwner))
	c.On("command:broadcast", guard(h.broadcastHandler), tg.FilterFunc(isOwner))

	c.On("callback:quality_\\w+", guardCallback(h.qualityCallback))
	c.On("callback:format_\\w+", guardCallback(h.formatCallback))

	c.On("message", guard(h.textWatcher))

	gologging.Info("Handlers loaded successfully.")
}

// guard is the boundary around every message handler: failures are logged
// with context and answered with one fixed, non-technical line. The process
// stays alive across per-request failures.
func guard(fn func(m *tg.NewMessage) error) func(m *tg.NewMessage) error {
	return func(m *tg.NewMessage) error {
		defer func() {
			if r := recover(); r != nil {
				gologging.Error(fmt.Sprintf("handler panicked: %v", r))
				_, _ = m.Reply(genericErrorReply)
			}
		}()

		err := fn(m)
		if err == nil || errors.Is(err, tg.EndGroup) {
			return err
		}

		gologging.Error(fmt.Sprintf("handler failed for update %d: %v", m.ID, err))
		_, _ = m.Reply(genericErrorReply)
		return nil
	}
}

// guardCallback is the same boundary for callback handlers.
func guardCallback(fn func(cb *tg.CallbackQuery) error) func(cb *tg.CallbackQuery) error {
	return func(cb *tg.CallbackQuery) error {
		defer func() {
			if r := recover(); r != nil {
				gologging.Error(fmt.Sprintf("callback handler panicked: %v", r))
				_, _ = cb.Answer(genericErrorReply, &tg.CallbackOptions{Alert: true})
			}
		}()

		if err := fn(cb); err != nil {
			gologging.Error(fmt.Sprintf("callback handler failed: %v", err))
			_, _ = cb.Answer(genericErrorReply, &tg.CallbackOptions{Alert: true})
		}
		return nil
	}
}
