package services

import (
	"time"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
)

var ErrDuplicateCheckIn = apperror.Conflict("already checked in today")

// StreakDayFormat is the persisted layout of streak history entries.
const StreakDayFormat = "2006-01-02"

// StreakState is the slice of the user record the streak engine reads and
// rewrites. All day comparisons use the UTC calendar date, never elapsed
// hours: 23:59 followed by 00:01 the next day counts as consecutive days.
type StreakState struct {
	LastCheckIn   *time.Time
	CurrentStreak int
	LongestStreak int
	StreakHistory []string
	CheckIns      int
	Points        int
}

func utcDay(instant time.Time) string {
	return instant.UTC().Format(StreakDayFormat)
}

func utcDayStart(instant time.Time) time.Time {
	year, month, day := instant.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AdvanceStreak applies one accepted check-in at the given instant. It
// rejects a second check-in on the same UTC day, increments the streak when
// the previous check-in fell on the previous UTC day, and resets it to 1
// otherwise. The history keeps the most recent models.StreakHistoryLimit days.
func AdvanceStreak(state StreakState, now time.Time) (StreakState, error) {
	today := utcDay(now)

	if state.LastCheckIn != nil && utcDay(*state.LastCheckIn) == today {
		return state, ErrDuplicateCheckIn
	}

	next := state
	if state.LastCheckIn == nil {
		next.CurrentStreak = 1
	} else {
		yesterday := utcDay(now.UTC().AddDate(0, 0, -1))
		if utcDay(*state.LastCheckIn) == yesterday {
			next.CurrentStreak = state.CurrentStreak + 1
		} else {
			next.CurrentStreak = 1
		}
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	history := make([]string, 0, len(state.StreakHistory)+1)
	history = append(history, state.StreakHistory...)
	history = append(history, today)
	if len(history) > models.StreakHistoryLimit {
		history = history[len(history)-models.StreakHistoryLimit:]
	}
	next.StreakHistory = history

	checkInInstant := now
	next.LastCheckIn = &checkInInstant
	next.CheckIns = state.CheckIns + 1
	next.Points = state.Points + 1

	return next, nil
}

// DecayStreak is the passive reset applied on read paths: once more than one
// full UTC day has passed since the last check-in the current streak drops to
// zero. Longest streak, history and counters are left alone. The returned
// flag reports whether the streak actually changed.
func DecayStreak(lastCheckIn *time.Time, currentStreak int, now time.Time) (int, bool) {
	if lastCheckIn == nil {
		return currentStreak, false
	}

	gapDays := int(utcDayStart(now).Sub(utcDayStart(*lastCheckIn)).Hours() / 24)
	if gapDays > 1 && currentStreak != 0 {
		return 0, true
	}
	return currentStreak, false
}
