package model

import (
	"fmt"

	"github.com/samber/lo"
)

// PrerequisiteCycleError is returned alongside a partial ordering when some courses can never have all of their
// prerequisites resolved, either because they sit on (or depend on) a cycle or because they name an unknown course
type PrerequisiteCycleError struct {
	Unresolved []string
	Total      int
}

func (err PrerequisiteCycleError) Error() string {
	return fmt.Sprintf("prerequisite cycle detected: %d of %d courses cannot be ordered: %v", len(err.Unresolved), err.Total, err.Unresolved)
}

// Orders the catalog's courses so that every course appears after all of its prerequisites (Kahn's algorithm).
// The in-degree of a course is its prerequisite count, and the queue is seeded in catalog order.
// When the ordering is shorter than the catalog a PrerequisiteCycleError is returned together with the partial ordering,
// which remains usable: the unresolved courses are simply absent from it.
func PrerequisiteOrder(catalog *Catalog) ([]string, error) {
	inDegree := make(map[string]int, catalog.Len())
	dependents := make(map[string][]string)
	for _, course := range catalog.courses {
		inDegree[course.Id] = len(course.Prerequisites)
		for _, prerequisite := range course.Prerequisites {
			dependents[prerequisite] = append(dependents[prerequisite], course.Id)
		}
	}

	queue := lo.Filter(catalog.Ids(), func(courseId string, _ int) bool {
		return inDegree[courseId] == 0
	})

	order := make([]string, 0, catalog.Len())
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) < catalog.Len() {
		ordered := lo.SliceToMap(order, func(courseId string) (string, bool) { return courseId, true })
		unresolved := lo.Filter(catalog.Ids(), func(courseId string, _ int) bool { return !ordered[courseId] })
		return order, PrerequisiteCycleError{Unresolved: unresolved, Total: catalog.Len()}
	}
	return order, nil
}
