package model

import (
	"errors"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrerequisiteOrderAcyclic(t *testing.T) {
	//** Arrange
	catalog := newTestCatalog(t,
		newTestCourse("compilers", 3, []string{"data structures", "formal languages"}),
		newTestCourse("data structures", 3, []string{"intro"}),
		newTestCourse("formal languages", 3, []string{"discrete math"}),
		newTestCourse("discrete math", 3, []string{"intro"}),
		newTestCourse("intro", 3, nil),
		newTestCourse("calculus", 3, nil),
	)

	//** Act
	order, err := PrerequisiteOrder(catalog)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "calculus", "data structures", "discrete math", "formal languages", "compilers"}, order)
	assertTopological(t, catalog, order)
}

func TestPrerequisiteOrderRandomAcyclic(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for range 20 {
		//** Arrange
		// Course i may only depend on courses with a smaller index, which rules out cycles
		total := 1 + random.Intn(40)
		courses := make([]Course, 0, total)
		for i := range total {
			prerequisites := make([]string, 0)
			for j := range i {
				if random.Intn(4) == 0 {
					prerequisites = append(prerequisites, strconv.Itoa(j))
				}
			}
			courses = append(courses, newTestCourse(strconv.Itoa(i), 3, prerequisites))
		}
		random.Shuffle(len(courses), func(i, j int) { courses[i], courses[j] = courses[j], courses[i] })
		catalog := newTestCatalog(t, courses...)

		//** Act
		order, err := PrerequisiteOrder(catalog)

		//** Assert
		require.NoError(t, err)
		assert.Len(t, order, total)
		assertTopological(t, catalog, order)
	}
}

func TestPrerequisiteOrderCycle(t *testing.T) {
	//** Arrange
	catalog := newTestCatalog(t,
		newTestCourse("A", 3, nil),
		newTestCourse("B", 3, []string{"A", "D"}),
		newTestCourse("C", 3, []string{"B"}),
		newTestCourse("D", 3, []string{"C"}),
		newTestCourse("E", 3, []string{"A"}),
		newTestCourse("SELF", 3, []string{"SELF"}),
	)

	//** Act
	order, err := PrerequisiteOrder(catalog)

	//** Assert
	var cycleErr PrerequisiteCycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"B", "C", "D", "SELF"}, cycleErr.Unresolved)
	assert.Equal(t, 6, cycleErr.Total)
	assert.Equal(t, []string{"A", "E"}, order)
	assert.Less(t, len(order), catalog.Len())
}

func TestPrerequisiteOrderUnknownPrerequisite(t *testing.T) {
	catalog := newTestCatalog(t,
		newTestCourse("A", 3, []string{"GHOST"}),
		newTestCourse("B", 3, nil),
	)

	order, err := PrerequisiteOrder(catalog)

	assert.Error(t, err)
	assert.Equal(t, []string{"B"}, order)
}

func assertTopological(t *testing.T, catalog *Catalog, order []string) {
	t.Helper()
	position := lo.SliceToMap(order, func(courseId string) (string, int) {
		return courseId, slices.Index(order, courseId)
	})
	for _, course := range catalog.Courses() {
		for _, prerequisite := range course.Prerequisites {
			assert.Less(t, position[prerequisite], position[course.Id], "%v must come after %v", course.Id, prerequisite)
		}
	}
}
