package model

// conflictDetector decides whether two offerings can share a term and whether an offering hits blocked time
type conflictDetector interface {
	// Checks whether offering1 and offering2 cannot both be attended in the same term
	Conflict(offering1, offering2 Offering) bool

	// Checks whether the offering occupies a slot that is blocked on the same day
	Blocked(offering Offering, blocked [DaysPerWeek]SlotMask) bool
}

// The scheduler compares day masks only, while the plan validator also requires the offerings to meet in a common week
func newConflictDetector(weekAware bool) conflictDetector {
	if weekAware {
		return &weekConflictDetector{}
	}
	return &slotConflictDetector{}
}

type slotConflictDetector struct{}

func (detector *slotConflictDetector) Conflict(offering1, offering2 Offering) bool {
	return SlotsOverlap(offering1.Times, offering2.Times)
}

func (detector *slotConflictDetector) Blocked(offering Offering, blocked [DaysPerWeek]SlotMask) bool {
	return SlotsOverlap(offering.Times, blocked)
}

type weekConflictDetector struct {
	slotConflictDetector
}

func (detector *weekConflictDetector) Conflict(offering1, offering2 Offering) bool {
	return offering1.Weeks&offering2.Weeks != 0 && SlotsOverlap(offering1.Times, offering2.Times)
}

// Checks whether two weekly patterns share a set bit on some day
func SlotsOverlap(times1, times2 [DaysPerWeek]SlotMask) bool {
	for day := range DaysPerWeek {
		if times1[day]&times2[day] != 0 {
			return true
		}
	}
	return false
}
