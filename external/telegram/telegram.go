package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ratelab/greencast/internal/chat"
)

// longPollTimeoutSec is the long-polling timeout passed to getUpdates.
const longPollTimeoutSec = 30

// Bot adapts the Telegram Bot API to the chat.Transport contract used by
// the dialog manager.
type Bot struct {
	api         *tgbotapi.BotAPI
	httpTimeout time.Duration
	handler     func(chat.Event)
}

func NewBot(token string, httpTimeout time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	return &Bot{api: api, httpTimeout: httpTimeout}, nil
}

func (b *Bot) SetHandler(handler func(chat.Event)) {
	b.handler = handler
}

// Run consumes the long-polling update stream until ctx is cancelled.
// Updates without a message payload (edits, callbacks) are skipped.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = longPollTimeoutSec

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	slog.Info("telegram update loop started", "bot_username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram update channel closed")
			}
			if update.Message == nil {
				continue
			}
			if b.handler != nil {
				b.handler(eventFromMessage(update.Message))
			}
		}
	}
}

func (b *Bot) Send(chatID int64, text string, kb *chat.Keyboard) error {
	return b.send(chatID, text, kb, "")
}

func (b *Bot) SendMarkdown(chatID int64, text string, kb *chat.Keyboard) error {
	return b.send(chatID, text, kb, tgbotapi.ModeMarkdown)
}

func (b *Bot) send(chatID int64, text string, kb *chat.Keyboard, parseMode string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if markup := replyMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// Download fetches the uploaded file over the Bot API file endpoint and
// stores it at destPath.
func (b *Bot) Download(upload chat.Upload, destPath string) error {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: upload.FileID})
	if err != nil {
		return fmt.Errorf("failed to resolve telegram file: %w", err)
	}

	client := &http.Client{Timeout: b.httpTimeout}
	resp, err := client.Get(file.Link(b.api.Token))
	if err != nil {
		return fmt.Errorf("failed to fetch telegram file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram file endpoint returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to store telegram file: %w", err)
	}
	return nil
}

func eventFromMessage(msg *tgbotapi.Message) chat.Event {
	ev := chat.Event{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.IsCommand() {
		ev.Command = msg.Command()
	}
	ev.Upload = uploadFromMessage(msg)
	return ev
}

func uploadFromMessage(msg *tgbotapi.Message) *chat.Upload {
	switch {
	case msg.Document != nil:
		return &chat.Upload{
			FileID: msg.Document.FileID,
			Name:   msg.Document.FileName,
			Kind:   chat.MediaDocument,
		}
	case len(msg.Photo) > 0:
		// the last entry is the highest-resolution variant
		photo := msg.Photo[len(msg.Photo)-1]
		return &chat.Upload{
			FileID: photo.FileID,
			Name:   fmt.Sprintf("photo_%s.jpg", photo.FileID),
			Kind:   chat.MediaPhoto,
		}
	case msg.Video != nil:
		name := msg.Video.FileName
		if name == "" {
			name = fmt.Sprintf("video_%s.mp4", msg.Video.FileID)
		}
		return &chat.Upload{
			FileID: msg.Video.FileID,
			Name:   name,
			Kind:   chat.MediaVideo,
		}
	case msg.Audio != nil:
		name := msg.Audio.FileName
		if name == "" {
			name = fmt.Sprintf("audio_%s.mp3", msg.Audio.FileID)
		}
		return &chat.Upload{
			FileID: msg.Audio.FileID,
			Name:   name,
			Kind:   chat.MediaAudio,
		}
	}
	return nil
}

func replyMarkup(kb *chat.Keyboard) interface{} {
	if kb == nil {
		return nil
	}
	if kb.Remove {
		return tgbotapi.NewRemoveKeyboard(true)
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}
