package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Report is the verdict of a plan validation. OK holds if and only if there are no diagnostics;
// TotalCredits is informational and never fails a plan
type Report struct {
	OK           bool
	Diagnostics  []string
	TotalCredits int
}

func (report Report) String() string {
	var builder strings.Builder
	if report.OK {
		builder.WriteString("plan is valid\n")
	} else {
		fmt.Fprintf(&builder, "found %d problem(s):\n", len(report.Diagnostics))
		for _, diagnostic := range report.Diagnostics {
			fmt.Fprintf(&builder, "  - %v\n", diagnostic)
		}
	}
	fmt.Fprintf(&builder, "total credits: %d\n", report.TotalCredits)
	return builder.String()
}

type PlanValidator interface {
	// Re-checks an arbitrary plan against the catalog without modifying either of them.
	// Every problem found is reported; the checks never stop at the first failure
	Validate(catalog *Catalog, plan Plan) Report
}

type planValidatorStandard struct {
	detector conflictDetector
}

func NewPlanValidator() PlanValidator {
	return &planValidatorStandard{
		detector: newConflictDetector(true),
	}
}

type placedOffering struct {
	course   string
	offering Offering
}

func (validator *planValidatorStandard) Validate(catalog *Catalog, plan Plan) Report {
	//** Key the plan by course: a later record for the same course replaces the earlier one
	selections := make(map[string]Assignment, len(plan))
	courseOrder := make([]string, 0, len(plan))
	for _, assignment := range plan {
		if _, seen := selections[assignment.Course]; !seen {
			courseOrder = append(courseOrder, assignment.Course)
		}
		selections[assignment.Course] = assignment
	}

	// Unscheduled records take no part in any check
	scheduled := lo.Filter(courseOrder, func(courseId string, _ int) bool {
		return selections[courseId].Scheduled()
	})

	diagnostics := make([]string, 0)
	diagnostics = append(diagnostics, validator.checkReferences(catalog, selections, scheduled)...)
	diagnostics = append(diagnostics, validator.checkPrerequisites(catalog, selections, scheduled)...)
	diagnostics = append(diagnostics, validator.checkConflicts(catalog, selections, scheduled)...)

	totalCredits := lo.SumBy(scheduled, func(courseId string) int {
		course, _ := catalog.Course(courseId)
		return course.Credit
	})

	return Report{
		OK:           len(diagnostics) == 0,
		Diagnostics:  diagnostics,
		TotalCredits: totalCredits,
	}
}

func (validator *planValidatorStandard) checkReferences(catalog *Catalog, selections map[string]Assignment, scheduled []string) []string {
	diagnostics := make([]string, 0)
	for _, courseId := range scheduled {
		assignment := selections[courseId]

		course, ok := catalog.Course(courseId)
		if !ok {
			diagnostics = append(diagnostics, fmt.Sprintf("course %v does not exist in the catalog", courseId))
			continue
		}
		if assignment.Term >= MaxTerms {
			diagnostics = append(diagnostics, fmt.Sprintf("course %v is assigned to term %v, but terms range from 0 to %v", catalog.Describe(courseId), assignment.Term, MaxTerms-1))
		}
		if _, ok := course.Offering(assignment.Offering); !ok {
			diagnostics = append(diagnostics, fmt.Sprintf("offering %v of course %v does not exist in the catalog", assignment.Offering, catalog.Describe(courseId)))
		}
	}
	return diagnostics
}

func (validator *planValidatorStandard) checkPrerequisites(catalog *Catalog, selections map[string]Assignment, scheduled []string) []string {
	diagnostics := make([]string, 0)
	for _, courseId := range scheduled {
		course, ok := catalog.Course(courseId)
		if !ok {
			continue
		}
		term := selections[courseId].Term

		for _, prerequisite := range course.Prerequisites {
			prerequisiteAssignment, ok := selections[prerequisite]
			if !ok || !prerequisiteAssignment.Scheduled() {
				diagnostics = append(diagnostics, fmt.Sprintf("course %v is missing prerequisite %v", catalog.Describe(courseId), catalog.Describe(prerequisite)))
			} else if prerequisiteAssignment.Term >= term {
				diagnostics = append(diagnostics, fmt.Sprintf("prerequisite %v of course %v is in term %v, which is not earlier than term %v", catalog.Describe(prerequisite), catalog.Describe(courseId), prerequisiteAssignment.Term, term))
			}
		}
	}
	return diagnostics
}

// Reports one diagnostic per conflicting pair within a term, terms in ascending order
func (validator *planValidatorStandard) checkConflicts(catalog *Catalog, selections map[string]Assignment, scheduled []string) []string {
	perTerm := make(map[int][]placedOffering)
	for _, courseId := range scheduled {
		assignment := selections[courseId]
		offering, ok := catalog.Offering(courseId, assignment.Offering)
		if !ok {
			continue
		}
		perTerm[assignment.Term] = append(perTerm[assignment.Term], placedOffering{course: courseId, offering: offering})
	}

	terms := lo.Keys(perTerm)
	slices.Sort(terms)

	diagnostics := make([]string, 0)
	for _, term := range terms {
		placed := perTerm[term]
		for i := range len(placed) - 1 {
			for j := i + 1; j < len(placed); j++ {
				if validator.detector.Conflict(placed[i].offering, placed[j].offering) {
					diagnostics = append(diagnostics, fmt.Sprintf("term %v: %v conflicts with %v", term, catalog.Describe(placed[i].course), catalog.Describe(placed[j].course)))
				}
			}
		}
	}
	return diagnostics
}
