package model

import "github.com/samber/lo"

// Plan is an ordered list of assignments, either generated by a Scheduler or read from a file
type Plan []Assignment

func (plan Plan) ForTerm(term int) Plan {
	return lo.Filter(plan, func(assignment Assignment, _ int) bool {
		return assignment.Term == term
	})
}

func (plan Plan) Scheduled() Plan {
	return lo.Filter(plan, func(assignment Assignment, _ int) bool {
		return assignment.Scheduled()
	})
}

func (plan Plan) Contains(courseId string) bool {
	return lo.ContainsBy(plan, func(assignment Assignment) bool {
		return assignment.Course == courseId
	})
}

// Returns the term the course is assigned to, or -1 if it is absent or unscheduled
func (plan Plan) TermOf(courseId string) int {
	assignment, ok := lo.Find(plan, func(assignment Assignment) bool {
		return assignment.Course == courseId && assignment.Scheduled()
	})
	if !ok {
		return -1
	}
	return assignment.Term
}

// Sums the credits of the term's courses; courses unknown to the catalog count as zero
func (plan Plan) CreditSum(catalog *Catalog, term int) int {
	return lo.SumBy(plan.ForTerm(term), func(assignment Assignment) int {
		course, _ := catalog.Course(assignment.Course)
		return course.Credit
	})
}

func (plan Plan) TotalCredits(catalog *Catalog) int {
	return lo.SumBy(plan.Scheduled(), func(assignment Assignment) int {
		course, _ := catalog.Course(assignment.Course)
		return course.Credit
	})
}

// Checks whether any course placed in the term meets during that term's blocked time
func (plan Plan) HasBlockedConflict(catalog *Catalog, parameters Parameters, term int) bool {
	if term < 0 || term >= MaxTerms {
		return false
	}
	detector := newConflictDetector(false)
	return lo.SomeBy(plan.ForTerm(term), func(assignment Assignment) bool {
		offering, ok := catalog.Offering(assignment.Course, assignment.Offering)
		return ok && detector.Blocked(offering, parameters.BlockedTimes[term])
	})
}
