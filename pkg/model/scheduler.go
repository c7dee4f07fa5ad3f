package model

import (
	"cmp"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Scheduler interface {
	// Builds a plan from scratch; courses that fit nowhere are left out without an error
	Generate(catalog *Catalog, parameters Parameters) Plan
}

type greedyScheduler struct {
	logger zerolog.Logger
}

func NewGreedyScheduler(logger zerolog.Logger) Scheduler {
	return &greedyScheduler{
		logger: logger,
	}
}

// placementState is the bookkeeping of a single Generate call
type placementState struct {
	catalog    *Catalog
	parameters Parameters
	detector   conflictDetector

	plan          Plan
	scheduledTerm map[string]int
	termOfferings [MaxTerms][]Offering
	termCredits   [MaxTerms]int
	totalCredits  int
}

func (scheduler *greedyScheduler) Generate(catalog *Catalog, parameters Parameters) Plan {
	logger := scheduler.logger.With().Str("run", uuid.NewString()).Logger()

	//** Order courses by prerequisites
	order, err := PrerequisiteOrder(catalog)
	var cycleErr PrerequisiteCycleError
	if errors.As(err, &cycleErr) {
		logger.Warn().Strs("unresolved", cycleErr.Unresolved).Msg("prerequisite cycle detected; unresolved courses will not be scheduled")
	}

	//** Higher priorities go first, ties keep the prerequisite order
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(parameters.Priority(b), parameters.Priority(a))
	})

	state := &placementState{
		catalog:       catalog,
		parameters:    parameters,
		detector:      newConflictDetector(false),
		plan:          make(Plan, 0, len(order)),
		scheduledTerm: make(map[string]int),
	}

	//** Place courses greedily
	for _, courseId := range order {
		if !parameters.Eligible(courseId) {
			continue
		}

		course, _ := catalog.Course(courseId)
		if !state.place(course) {
			logger.Debug().Str("course", courseId).Msg("no feasible term and offering")
			continue
		}

		// Only checked right after a placement, hence a zero target stops after the first placed course
		if state.totalCredits >= parameters.TotalCreditTarget {
			logger.Debug().Int("credits", state.totalCredits).Int("target", parameters.TotalCreditTarget).Msg("credit target reached")
			break
		}
	}

	logger.Info().Int("placed", len(state.plan)).Int("credits", state.totalCredits).Msg("plan generated")
	return state.plan
}

// Places the course in the first term and offering that fit, reporting whether it succeeded
func (state *placementState) place(course Course) bool {
	for term := state.earliestTerm(course); term < MaxTerms; term++ {
		if state.termCredits[term]+course.Credit > state.parameters.CreditCaps[term] {
			continue
		}
		if !state.prerequisitesSatisfied(course, term) {
			continue
		}

		for _, offering := range course.Offerings {
			if state.conflicts(offering, term) {
				continue
			}

			state.plan = append(state.plan, Assignment{Course: course.Id, Offering: offering.Id, Term: term})
			state.scheduledTerm[course.Id] = term
			state.termOfferings[term] = append(state.termOfferings[term], offering)
			state.termCredits[term] += course.Credit
			state.totalCredits += course.Credit
			return true
		}
	}
	return false
}

// Returns the first term strictly after every prerequisite placed so far; unplaced prerequisites don't count here
func (state *placementState) earliestTerm(course Course) int {
	earliest := 0
	for _, prerequisite := range course.Prerequisites {
		if term, ok := state.scheduledTerm[prerequisite]; ok {
			earliest = max(earliest, term+1)
		}
	}
	return earliest
}

// Checks whether every prerequisite of the course is already placed in a term strictly before the given one
func (state *placementState) prerequisitesSatisfied(course Course, term int) bool {
	for _, prerequisite := range course.Prerequisites {
		prerequisiteTerm, ok := state.scheduledTerm[prerequisite]
		if !ok || prerequisiteTerm >= term {
			return false
		}
	}
	return true
}

// Checks the offering against the term's blocked time and the offerings already placed in the term
func (state *placementState) conflicts(offering Offering, term int) bool {
	if state.detector.Blocked(offering, state.parameters.BlockedTimes[term]) {
		return true
	}
	return slices.ContainsFunc(state.termOfferings[term], func(placed Offering) bool {
		return state.detector.Conflict(offering, placed)
	})
}
