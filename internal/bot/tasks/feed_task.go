package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smsmy/farm-notifier/internal/messages"
	"github.com/smsmy/farm-notifier/internal/schedule"
)

// NewFeedPublishTask creates the task that builds the rolling agenda and
// writes the notification feed document consumed by the static pages.
func NewFeedPublishTask(deps Deps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskFeedPublish)

	return func(ctx context.Context) error {
		startTime := time.Now()
		now := deps.now().In(deps.location())
		start := schedule.DateOf(now)
		horizon := deps.Config.Server.HorizonDays

		log.InfoContext(ctx, "Publishing notification feed", "start", start, "horizon_days", horizon)

		report := deps.Weather.Report(ctx)
		payloads, err := deps.Builder.Build(ctx, start, horizon, report)
		if err != nil {
			return fmt.Errorf("failed to build agenda: %w", err)
		}

		doc := messages.BuildFeed(payloads, now)
		if err := writeFeed(deps.Config.Server.FeedPath, doc); err != nil {
			return err
		}

		log.InfoContext(ctx, "Notification feed published",
			"path", deps.Config.Server.FeedPath,
			"notifications", doc.TotalCount,
			"duration", time.Since(startTime))
		return nil
	}
}

// writeFeed writes the document atomically: marshal to a temp file in
// the target directory, then rename over the destination.
func writeFeed(path string, doc messages.FeedDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feed document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create feed directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".feed-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp feed file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write feed file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close feed file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace feed file: %w", err)
	}
	return nil
}
