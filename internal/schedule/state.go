package schedule

import "context"

// StateStore exposes the out-of-band flags the engine consults. The only
// one today is the feed-change marker, written by the farmer when the feed
// mix changes; it is keyed by calendar date so a stale marker from a
// previous day never triggers a reminder.
//
// The engine depends on this interface rather than on the filesystem or
// the database directly, so eligibility stays testable without either.
type StateStore interface {
	FeedChangedOn(ctx context.Context, d Date) (bool, error)
}

// NoState is a StateStore with no recorded flags. Used when the engine
// runs without a database, e.g. in the static feed generator.
type NoState struct{}

func (NoState) FeedChangedOn(context.Context, Date) (bool, error) { return false, nil }
