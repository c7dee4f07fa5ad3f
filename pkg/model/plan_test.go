package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanQueries(t *testing.T) {
	//** Arrange
	catalog := newTestCatalog(t,
		newTestCourse("A", 3, nil, newTestOffering("A-1", monday, 0)),
		newTestCourse("B", 4, nil, newTestOffering("B-1", tuesday, 6)),
		newTestCourse("C", 2, nil, newTestOffering("C-1", monday, 1)),
	)
	plan := Plan{
		{Course: "A", Offering: "A-1", Term: 0},
		{Course: "B", Offering: "B-1", Term: 0},
		{Course: "C", Offering: "C-1", Term: 2},
		{Course: "GHOST", Offering: "X", Term: 2},
		{Course: "D", Offering: "D-1", Term: -1},
	}
	parameters := NewParameters()
	require.NoError(t, parameters.AddBlockedTime(0, tuesday, 1<<6))

	//** Act and assert
	assert.Equal(t, Plan{plan[0], plan[1]}, plan.ForTerm(0))
	assert.Len(t, plan.Scheduled(), 4)
	assert.Equal(t, 7, plan.CreditSum(catalog, 0))
	assert.Equal(t, 2, plan.CreditSum(catalog, 2))
	assert.Zero(t, plan.CreditSum(catalog, 5))
	assert.Equal(t, 9, plan.TotalCredits(catalog))
	assert.Equal(t, 2, plan.TermOf("C"))
	assert.Equal(t, -1, plan.TermOf("D"))
	assert.True(t, plan.Contains("D"))
	assert.False(t, plan.Contains("E"))

	assert.True(t, plan.HasBlockedConflict(catalog, parameters, 0))
	assert.False(t, plan.HasBlockedConflict(catalog, parameters, 2))
	assert.False(t, plan.HasBlockedConflict(catalog, parameters, MaxTerms))
}

func TestCatalogLookups(t *testing.T) {
	catalog := newTestCatalog(t,
		newTestCourse("A", 3, nil, newTestOffering("A-1", monday, 0)),
		Course{Id: "UNNAMED"},
	)

	offering, ok := catalog.Offering("A", "A-1")
	assert.True(t, ok)
	assert.Equal(t, "A", offering.Course)
	_, ok = catalog.Offering("A", "A-2")
	assert.False(t, ok)
	_, ok = catalog.Offering("Z", "A-1")
	assert.False(t, ok)

	assert.Equal(t, "A (Course A)", catalog.Describe("A"))
	assert.Equal(t, "UNNAMED", catalog.Describe("UNNAMED"))
	assert.Equal(t, "Z", catalog.Describe("Z"))

	_, err := NewCatalog([]Course{{Id: "A"}, {Id: "A"}})
	assert.Error(t, err)
}
