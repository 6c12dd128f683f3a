package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/smsmy/farm-notifier/internal/messages"
)

// photoCaptionLimit is Telegram's caption length limit for photos.
const photoCaptionLimit = 1024

// sender is the subset of bot.Bot the notifier needs. Narrowed for
// testing with a fake.
type sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	GetMe(ctx context.Context) (*models.User, error)
}

// Notifier sends rendered bilingual notifications to one chat. The
// Arabic message carries the illustration when one exists on disk; the
// Bengali message is always text-only.
type Notifier struct {
	bot      sender
	chatID   int64
	pacing   time.Duration
	imageDir string
	logger   *slog.Logger
}

// NewNotifier builds a notifier for the given chat. pacing is the delay
// between consecutive notifications to stay under Telegram rate limits.
func NewNotifier(b sender, chatID int64, pacing time.Duration, imageDir string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{
		bot:      b,
		chatID:   chatID,
		pacing:   pacing,
		imageDir: imageDir,
		logger:   logger.With("component", "notifier"),
	}
}

// SendBatch delivers all messages in order. A failed message is logged
// and skipped; the rest of the batch still goes out. The returned count
// is the number of messages fully delivered.
func (n *Notifier) SendBatch(ctx context.Context, msgs []messages.Message) (int, error) {
	if len(msgs) == 0 {
		n.logger.InfoContext(ctx, "No messages to send")
		return 0, nil
	}

	n.logger.InfoContext(ctx, "Sending notification batch", "count", len(msgs))

	sent := 0
	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return sent, fmt.Errorf("batch interrupted after %d of %d messages: %w", sent, len(msgs), err)
		}

		if err := n.sendOne(ctx, msg); err != nil {
			n.logger.ErrorContext(ctx, "Failed to send notification, continuing with next",
				"index", i, "kind", msg.Kind, "error", err)
			continue
		}
		sent++

		if n.pacing > 0 && i < len(msgs)-1 {
			select {
			case <-time.After(n.pacing):
			case <-ctx.Done():
				return sent, fmt.Errorf("batch interrupted after %d of %d messages: %w", sent, len(msgs), ctx.Err())
			}
		}
	}

	n.logger.InfoContext(ctx, "Notification batch finished", "sent", sent, "total", len(msgs))
	return sent, nil
}

// sendOne sends the Arabic message (with its image when available)
// followed by the Bengali one.
func (n *Notifier) sendOne(ctx context.Context, msg messages.Message) error {
	if err := n.sendText(ctx, msg.Arabic, msg.Image); err != nil {
		return fmt.Errorf("arabic message: %w", err)
	}
	if err := n.sendText(ctx, msg.Bengali, ""); err != nil {
		return fmt.Errorf("bengali message: %w", err)
	}
	return nil
}

func (n *Notifier) sendText(ctx context.Context, text, image string) error {
	if text == "" {
		n.logger.WarnContext(ctx, "Empty message text, skipping send")
		return nil
	}

	if path := n.findImage(image); path != "" {
		return n.sendPhotoWithCaption(ctx, path, text)
	}
	if image != "" {
		n.logger.WarnContext(ctx, "Image not found, sending text only", "image", image)
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// sendPhotoWithCaption sends the image with the text as caption. Text
// beyond Telegram's caption limit is sent as a follow-up message.
func (n *Notifier) sendPhotoWithCaption(ctx context.Context, path, caption string) error {
	f, err := os.Open(path)
	if err != nil {
		n.logger.WarnContext(ctx, "Failed to open image, sending text only", "path", path, "error", err)
		_, sendErr := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    n.chatID,
			Text:      caption,
			ParseMode: models.ParseModeMarkdown,
		})
		return sendErr
	}
	defer f.Close()

	short := caption
	if len(short) > photoCaptionLimit {
		short = short[:photoCaptionLimit]
	}

	_, err = n.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: n.chatID,
		Photo: &models.InputFileUpload{
			Filename: filepath.Base(path),
			Data:     f,
		},
		Caption:   short,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}

	if len(caption) > photoCaptionLimit {
		_, err = n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    n.chatID,
			Text:      caption[photoCaptionLimit:],
			ParseMode: models.ParseModeMarkdown,
		})
		if err != nil {
			return fmt.Errorf("failed to send caption overflow: %w", err)
		}
	}
	return nil
}

// findImage resolves an image name against the configured image
// directory, trying common extensions and the fertilizers subdirectory.
func (n *Notifier) findImage(name string) string {
	if name == "" || n.imageDir == "" {
		return ""
	}

	bases := []string{
		filepath.Join(n.imageDir, name),
		filepath.Join(n.imageDir, "fertilizers", name),
	}
	extensions := []string{"", ".jpg", ".png", ".jpeg", ".webp"}

	for _, base := range bases {
		for _, ext := range extensions {
			full := base + ext
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				return full
			}
		}
	}
	return ""
}

// TestConnection verifies the bot token by fetching the bot's identity.
func (n *Notifier) TestConnection(ctx context.Context) error {
	me, err := n.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach Telegram: %w", err)
	}
	n.logger.InfoContext(ctx, "Telegram connection OK", "bot", me.Username)
	return nil
}
