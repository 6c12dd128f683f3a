package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/smsmy/farm-notifier/internal/agenda"
	"github.com/smsmy/farm-notifier/internal/messages"
	"github.com/smsmy/farm-notifier/internal/schedule"
)

// NewDailyNotificationsTask creates the task that evaluates today's
// eligible tasks and sends them to the chat. Exported so the -once CLI
// mode can run a single pass outside the scheduler.
func NewDailyNotificationsTask(deps Deps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskDailyNotifications)

	return func(ctx context.Context) error {
		startTime := time.Now()
		today := schedule.DateOf(deps.now().In(deps.location()))
		log.InfoContext(ctx, "Starting daily notification pass", "date", today)

		report := deps.Weather.Report(ctx)
		if report == nil {
			log.WarnContext(ctx, "No weather data, evaluating calendar-only tasks")
		}

		payloads := deps.Builder.BuildForDate(ctx, today, report)
		msgs := renderBatch(deps.Renderer, payloads)

		if len(msgs) == 0 {
			log.InfoContext(ctx, "No tasks scheduled for today")

			// Severe weather still warrants a heads-up even with an
			// empty agenda.
			alerts := deps.Renderer.WeatherAlerts(report)
			if len(alerts) > 0 {
				if _, err := deps.Notifier.SendBatch(ctx, alerts); err != nil {
					return fmt.Errorf("failed to send weather alerts: %w", err)
				}
			}
			return recordRun(ctx, deps, today, 0)
		}

		sent, err := deps.Notifier.SendBatch(ctx, msgs)
		if err != nil {
			return fmt.Errorf("failed to send daily notifications: %w", err)
		}
		if sent < len(msgs) {
			log.WarnContext(ctx, "Some notifications failed to send", "sent", sent, "total", len(msgs))
		}

		for _, p := range payloads {
			if err := deps.Store.RecordSent(ctx, today, string(p.Kind), sentDetail(p)); err != nil {
				log.WarnContext(ctx, "Failed to record sent notification", "kind", p.Kind, "error", err)
			}
		}

		log.InfoContext(ctx, "Daily notification pass finished",
			"tasks", len(payloads), "sent", sent, "duration", time.Since(startTime))
		return recordRun(ctx, deps, today, len(payloads))
	}
}

// renderBatch renders all payloads and appends the deworming guide
// message right after a deworming notification.
func renderBatch(r *messages.Renderer, payloads []agenda.TaskPayload) []messages.Message {
	msgs := make([]messages.Message, 0, len(payloads)+1)
	for _, p := range payloads {
		msgs = append(msgs, r.Render(p))
		if p.Kind == schedule.TaskDeworming {
			msgs = append(msgs, r.DewormingGuide())
		}
	}
	return msgs
}

func sentDetail(p agenda.TaskPayload) string {
	switch {
	case p.Drug != "":
		return p.Drug
	case p.Tree != "":
		return p.Tree
	case p.Reason != "":
		return string(p.Reason)
	default:
		return ""
	}
}

func recordRun(ctx context.Context, deps Deps, day schedule.Date, taskCount int) error {
	if err := deps.Store.RecordRun(ctx, day, taskCount); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
