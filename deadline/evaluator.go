package deadline

import "time"

// Tier is the urgency of a task's deadline. Higher values are more urgent.
type Tier int

const (
	TierNone Tier = iota
	TierUpcoming
	TierNear
	TierOverdue
)

const (
	nearWindow     = 24 * time.Hour
	upcomingWindow = 72 * time.Hour
)

func (t Tier) String() string {
	switch t {
	case TierOverdue:
		return "overdue"
	case TierNear:
		return "near"
	case TierUpcoming:
		return "upcoming"
	default:
		return "none"
	}
}

// Classify maps a deadline to its urgency tier at the given instant.
// Completed tasks are never urgent. The windows are inclusive, so exactly
// one day left already counts as near, and a task is overdue from the
// deadline instant itself.
func Classify(deadline, now time.Time, completed bool) Tier {
	if completed {
		return TierNone
	}
	remaining := deadline.Sub(now)
	switch {
	case remaining <= 0:
		return TierOverdue
	case remaining <= nearWindow:
		return TierNear
	case remaining <= upcomingWindow:
		return TierUpcoming
	default:
		return TierNone
	}
}
