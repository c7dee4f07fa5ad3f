package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	catalogTestDirectory    = "../../test/catalog/"
	planTestDirectory       = "../../test/plan/"
	parametersTestDirectory = "../../test/parameters/"
)

const (
	monday = iota
	tuesday
	wednesday
)

func newTestCourse(id string, credit int, prerequisites []string, offerings ...Offering) Course {
	course := Course{
		Id:            id,
		Name:          "Course " + id,
		Credit:        credit,
		Prerequisites: prerequisites,
		Offerings:     make([]Offering, 0, len(offerings)),
	}
	for _, offering := range offerings {
		offering.Course = id
		course.Offerings = append(course.Offerings, offering)
	}
	return course
}

// Builds an offering meeting every week on the given day and slots
func newTestOffering(id string, day int, slots ...int) Offering {
	offering := Offering{Id: id, Weeks: AllWeeks}
	for _, slot := range slots {
		offering.Times[day] |= 1 << slot
	}
	return offering
}

func newTestCatalog(t *testing.T, courses ...Course) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(courses)
	require.NoError(t, err)
	return catalog
}

// Parameters with every course of the catalog selected and a target no run can reach
func selectAllParameters(catalog *Catalog) Parameters {
	parameters := NewParameters()
	parameters.SetSelectedCourses(catalog.Ids())
	parameters.SetTotalCreditTarget(1 << 20)
	return parameters
}
