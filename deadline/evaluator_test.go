package deadline

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deadline  time.Time
		completed bool
		want      Tier
	}{
		{"completed task is never urgent", now.Add(-time.Hour), true, TierNone},
		{"completed wins over near deadline", now.Add(time.Hour), true, TierNone},
		{"exactly at deadline is overdue", now, false, TierOverdue},
		{"one second past deadline", now.Add(-time.Second), false, TierOverdue},
		{"long past deadline", now.Add(-30 * 24 * time.Hour), false, TierOverdue},
		{"one second left", now.Add(time.Second), false, TierNear},
		{"six hours left", now.Add(6 * time.Hour), false, TierNear},
		{"exactly one day left", now.Add(24 * time.Hour), false, TierNear},
		{"just over one day", now.Add(24*time.Hour + time.Second), false, TierUpcoming},
		{"two days left", now.Add(48 * time.Hour), false, TierUpcoming},
		{"exactly three days left", now.Add(72 * time.Hour), false, TierUpcoming},
		{"just over three days", now.Add(72*time.Hour + time.Second), false, TierNone},
		{"far future", now.Add(30 * 24 * time.Hour), false, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.deadline, now, tt.completed); got != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %v, want %v",
					tt.deadline, now, tt.completed, got, tt.want)
			}
		})
	}
}

func TestTierOrdering(t *testing.T) {
	t.Parallel()

	if !(TierNone < TierUpcoming && TierUpcoming < TierNear && TierNear < TierOverdue) {
		t.Fatalf("tier severity order broken: none=%d upcoming=%d near=%d overdue=%d",
			TierNone, TierUpcoming, TierNear, TierOverdue)
	}
}

func TestTierString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier Tier
		want string
	}{
		{TierNone, "none"},
		{TierUpcoming, "upcoming"},
		{TierNear, "near"},
		{TierOverdue, "overdue"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
