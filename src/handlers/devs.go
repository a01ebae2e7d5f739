/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package handlers

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/amarnathcjd/gogram/telegram"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"

	"tgsaver/src/core/db"
	"tgsaver/src/utils"
)

const broadcastThrottle = 100 * time.Millisecond

// statsHandler handles the /stats command (owner only).
func (h *Modules) statsHandler(m *telegram.NewMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg, err := m.Reply("📊 Collecting system statistics...")
	if err != nil {
		return err
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 <b>%s — Runtime Status</b>\n", m.Client.Me().FirstName))
	sb.WriteString(strings.Repeat("─", 36) + "\n\n")

	sb.WriteString("🤖 <b>Application</b>\n")
	sb.WriteString(fmt.Sprintf(
		"• Uptime: %s\n• Goroutines: %d\n• Go Version: %s\n• App Memory: %s (heap %s)\n\n",
		time.Since(startTime).Round(time.Second),
		runtime.NumGoroutine(),
		runtime.Version(),
		utils.HumanBytes(ms.Alloc),
		utils.HumanBytes(ms.HeapAlloc),
	))

	sb.WriteString("🖥 <b>Host</b>\n")
	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		sb.WriteString(fmt.Sprintf("• CPU: %.1f%%\n", percents[0]))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sb.WriteString(fmt.Sprintf(
			"• RAM: %s / %s (%.1f%%)\n",
			utils.HumanBytes(vm.Used), utils.HumanBytes(vm.Total), vm.UsedPercent,
		))
	}
	if du, err := disk.Usage("/"); err == nil {
		sb.WriteString(fmt.Sprintf(
			"• Disk: %s / %s (%.1f%%)\n",
			utils.HumanBytes(du.Used), utils.HumanBytes(du.Total), du.UsedPercent,
		))
	}
	sb.WriteString("\n")

	if db.Instance != nil {
		users, _ := db.Instance.GetAllUsers(ctx)
		chats, _ := db.Instance.GetAllChats(ctx)
		sb.WriteString("📦 <b>Database</b>\n")
		sb.WriteString(fmt.Sprintf("• Users: %d\n• Chats: %d\n", len(users), len(chats)))
	}

	sb.WriteString("\n" + strings.Repeat("─", 36))

	_, _ = msg.Edit(sb.String())
	return nil
}

// broadcastHandler handles the /broadcast command (owner only). The message
// text after the command is sent to every known user and chat, with a short
// pause between sends to stay under flood limits.
func (h *Modules) broadcastHandler(m *telegram.NewMessage) error {
	if db.Instance == nil {
		_, err := m.Reply("Broadcast requires MONGO_URI to be configured.")
		return err
	}

	text := strings.TrimSpace(m.Args())
	if text == "" {
		_, err := m.Reply("Usage: <code>/broadcast &lt;message&gt;</code>")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, _ := db.Instance.GetAllUsers(ctx)
	chats, _ := db.Instance.GetAllChats(ctx)
	targets := append(users, chats...)

	status, err := m.Reply(fmt.Sprintf("📣 Broadcasting to %d peers...", len(targets)))
	if err != nil {
		return err
	}

	sent, failed := 0, 0
	for _, peer := range targets {
		if _, err := m.Client.SendMessage(peer, text); err != nil {
			failed++
		} else {
			sent++
		}
		time.Sleep(broadcastThrottle)
	}

	_, err = status.Edit(fmt.Sprintf(
		"📣 <b>Broadcast finished</b>\n• Delivered: %d\n• Failed: %d",
		sent, failed,
	))
	return err
}
