package messages

import (
	"time"

	"github.com/smsmy/farm-notifier/internal/agenda"
)

// FeedNotification is one agenda entry decorated with bilingual titles
// and an icon for the published notification feed.
type FeedNotification struct {
	agenda.TaskPayload

	TitleAR string `json:"title_ar"`
	TitleBN string `json:"title_bn"`
	Icon    string `json:"icon"`
}

// FeedCountdown points at the next upcoming notification and how far
// away it is.
type FeedCountdown struct {
	NextNotification *FeedNotification `json:"next_notification"`
	Countdown        *agenda.Countdown `json:"countdown,omitempty"`
	CurrentTime      time.Time         `json:"current_time"`
	MessageAR        string            `json:"message_ar,omitempty"`
	MessageBN        string            `json:"message_bn,omitempty"`
}

// FeedDocument is the JSON document served to the static notification
// pages.
type FeedDocument struct {
	GeneratedAt   time.Time          `json:"generated_at"`
	Notifications []FeedNotification `json:"notifications"`
	Countdown     FeedCountdown      `json:"countdown"`
	TotalCount    int                `json:"total_count"`
}

// BuildFeed assembles the feed document from a built agenda. now fixes
// both the generation timestamp and the countdown reference point.
func BuildFeed(payloads []agenda.TaskPayload, now time.Time) FeedDocument {
	notifications := make([]FeedNotification, 0, len(payloads))
	for _, p := range payloads {
		ar, bn := Title(p)
		notifications = append(notifications, FeedNotification{
			TaskPayload: p,
			TitleAR:     ar,
			TitleBN:     bn,
			Icon:        Icon(p.Kind),
		})
	}

	doc := FeedDocument{
		GeneratedAt:   now,
		Notifications: notifications,
		TotalCount:    len(notifications),
	}

	next := agenda.NextDue(payloads, now)
	if next == nil {
		doc.Countdown = FeedCountdown{
			CurrentTime: now,
			MessageAR:   "لا توجد إشعارات قادمة",
			MessageBN:   "কোনো আসন্ন বিজ্ঞপ্তি নেই",
		}
		return doc
	}

	ar, bn := Title(*next)
	cd := agenda.NewCountdown(next.At, now)
	doc.Countdown = FeedCountdown{
		NextNotification: &FeedNotification{
			TaskPayload: *next,
			TitleAR:     ar,
			TitleBN:     bn,
			Icon:        Icon(next.Kind),
		},
		Countdown:   &cd,
		CurrentTime: now,
	}
	return doc
}
