// Package bot runs the Telegram entry point: it answers /start with the
// webapp button and delivers referral notifications.
package bot

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"mining_webapp/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	bot       *tgbotapi.BotAPI
	webAppURL string
	stopCh    chan struct{}
	wg        sync.WaitGroup
	log       *slog.Logger
}

func New(token, webAppURL string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "bot")
	log.Info("bot authorized", "username", api.Self.UserName)

	return &Bot{
		bot:       api,
		webAppURL: webAppURL,
		stopCh:    make(chan struct{}),
		log:       log,
	}, nil
}

// Start runs the update loop until Stop is called
func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleCommand(msg)
			}(update.Message)
		}
	}
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	close(b.stopCh)
	b.bot.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("bot stopped gracefully")
	case <-time.After(10 * time.Second):
		b.log.Warn("bot shutdown timeout, some handlers may not have completed")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendWelcome(msg.Chat.ID)
	case "help":
		b.send(msg.Chat.ID, "Open the app to start mining. Invite friends with your referral link to earn commissions.")
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	reply := tgbotapi.NewMessage(chatID,
		"Welcome! Tap the button below to open the mining app. Start farming, complete tasks and invite friends to earn more.")

	if b.webAppURL != "" {
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Open Mining App", b.webAppURL),
			),
		)
	}

	if _, err := b.bot.Send(reply); err != nil {
		b.log.Warn("failed to send welcome", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Warn("failed to send message", "chat_id", chatID, "error", err)
	}
}

// Notify implements service.Notifier. Delivery failures are logged and
// swallowed; a blocked bot must never break registration.
func (b *Bot) Notify(telegramID, message string) {
	chatID, err := strconv.ParseInt(telegramID, 10, 64)
	if err != nil {
		b.log.Warn("bad telegram id for notification", "telegram_id", telegramID)
		return
	}
	b.send(chatID, message)
}
