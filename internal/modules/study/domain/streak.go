package domain

// Streak is the pair of document fields the streak rules read and write.
type Streak struct {
	Count         int
	LastStudyDate Date
}

// AdvanceStreak applies one recorded study day to s.
//
// Studying again on LastStudyDate changes nothing. The day after it extends
// the streak, any later day (or no prior date) restarts it at 1. A
// LastStudyDate in the future, which only happens when the clock moved
// backwards, keeps the count and moves the date to today.
func AdvanceStreak(s Streak, today Date) Streak {
	if s.LastStudyDate.IsZero() {
		return Streak{Count: 1, LastStudyDate: today}
	}
	days := s.LastStudyDate.DaysUntil(today)
	switch {
	case days == 0:
		return s
	case days == 1:
		return Streak{Count: s.Count + 1, LastStudyDate: today}
	case days > 1:
		return Streak{Count: 1, LastStudyDate: today}
	default:
		return Streak{Count: s.Count, LastStudyDate: today}
	}
}
