package agenda

import "time"

// NextDue returns the first payload in the sorted agenda whose timestamp
// lies strictly after ref, or nil when the horizon holds no future entry.
// The caller decides whether to retry with a longer horizon; the engine
// never auto-extends.
func NextDue(agenda []TaskPayload, ref time.Time) *TaskPayload {
	for i := range agenda {
		if agenda[i].At.After(ref) {
			return &agenda[i]
		}
	}
	return nil
}

// Countdown is the remaining-duration breakdown to a payload's timestamp,
// for countdown displays.
type Countdown struct {
	TotalSeconds int `json:"total_seconds"`
	Days         int `json:"days"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
}

// NewCountdown breaks the interval from now until at into days, hours,
// minutes, and seconds. A target in the past yields all zeros.
func NewCountdown(at, now time.Time) Countdown {
	total := int(at.Sub(now).Seconds())
	if total < 0 {
		total = 0
	}
	return Countdown{
		TotalSeconds: total,
		Days:         total / 86400,
		Hours:        (total % 86400) / 3600,
		Minutes:      (total % 3600) / 60,
		Seconds:      total % 60,
	}
}
