package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DueStatus classifies how urgent a debt is relative to its due date
type DueStatus string

const (
	// DueStatusSettled means nothing remains to pay
	DueStatusSettled DueStatus = "settled"
	// DueStatusOverdue means the due date has passed with money still owed
	DueStatusOverdue DueStatus = "overdue"
	// DueStatusDueSoon means the due date falls within the warning window
	DueStatusDueSoon DueStatus = "due_soon"
	// DueStatusOnTrack means the due date is comfortably ahead
	DueStatusOnTrack DueStatus = "on_track"
	// DueStatusNone means money is owed but no due date was promised
	DueStatusNone DueStatus = "none"
)

// DueSoonWindow is how far ahead a due date counts as "due soon"
const DueSoonWindow = 3 * 24 * time.Hour

// ClassifyDue buckets a debt by its due date. Dates are compared at day
// granularity in local time, so a debt due today is due soon, not overdue.
func ClassifyDue(dueDate *time.Time, remaining decimal.Decimal, now time.Time) DueStatus {
	if !remaining.IsPositive() {
		return DueStatusSettled
	}
	if dueDate == nil {
		return DueStatusNone
	}

	today := truncateToDay(now)
	due := truncateToDay(*dueDate)

	switch {
	case due.Before(today):
		return DueStatusOverdue
	case due.Sub(today) <= DueSoonWindow:
		return DueStatusDueSoon
	default:
		return DueStatusOnTrack
	}
}

// SortByUrgency orders debts overdue first, then due soon, then on track,
// then undated ones, with older due dates first inside each bucket and
// undated debts oldest record first.
func SortByUrgency(debts []Debt, now time.Time) {
	rank := map[DueStatus]int{
		DueStatusOverdue: 0,
		DueStatusDueSoon: 1,
		DueStatusOnTrack: 2,
		DueStatusNone:    3,
		DueStatusSettled: 4,
	}

	sort.SliceStable(debts, func(i, j int) bool {
		ri := rank[debts[i].DueStatus(now)]
		rj := rank[debts[j].DueStatus(now)]
		if ri != rj {
			return ri < rj
		}

		di, dj := debts[i].DueDate, debts[j].DueDate
		switch {
		case di != nil && dj != nil:
			return di.Before(*dj)
		case di != nil:
			return true
		case dj != nil:
			return false
		default:
			return debts[i].CreatedAt.Before(debts[j].CreatedAt)
		}
	})
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
