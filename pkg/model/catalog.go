package model

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	DaysPerWeek     = 7
	SlotsPerDay     = 13
	FirstSlotMinute = 8 * 60 // Slot 0 starts at 08:00
	SlotMinutes     = 45
	MaxTerms        = 8
	WeeksPerTerm    = 32
)

// SlotMask holds one bit per time slot of a day, bit i standing for the i-th slot
type SlotMask uint32

// WeekMask holds one bit per calendar week of a term, bit i standing for the i-th week
type WeekMask uint32

const (
	AllSlots SlotMask = 1<<SlotsPerDay - 1
	AllWeeks WeekMask = 1<<WeeksPerTerm - 1
)

type Offering struct {
	Id      string
	Course  string
	Teacher string
	Times   [DaysPerWeek]SlotMask
	Weeks   WeekMask
}

type Course struct {
	Id            string
	Name          string
	Credit        int
	Required      bool
	Prerequisites []string
	Offerings     []Offering
}

// Returns the offering identified by offeringId and whether it exists
func (course Course) Offering(offeringId string) (Offering, bool) {
	return lo.Find(course.Offerings, func(offering Offering) bool {
		return offering.Id == offeringId
	})
}

// Catalog is the read-only view over the loaded courses shared by the scheduler and the validator.
// Courses keep the order in which they were loaded.
type Catalog struct {
	courses []Course
	index   map[string]int
}

// Builds a catalog from already normalized courses, failing on duplicate identifiers
func NewCatalog(courses []Course) (*Catalog, error) {
	catalog := &Catalog{
		courses: make([]Course, 0, len(courses)),
		index:   make(map[string]int, len(courses)),
	}

	for _, course := range courses {
		if _, ok := catalog.index[course.Id]; ok {
			return nil, fmt.Errorf("duplicate course identifier \"%v\"", course.Id)
		}
		catalog.index[course.Id] = len(catalog.courses)
		catalog.courses = append(catalog.courses, course)
	}

	return catalog, nil
}

func (catalog *Catalog) Len() int {
	return len(catalog.courses)
}

// Returns a copy of the courses in catalog order
func (catalog *Catalog) Courses() []Course {
	courses := make([]Course, len(catalog.courses))
	copy(courses, catalog.courses)
	return courses
}

func (catalog *Catalog) Ids() []string {
	return lo.Map(catalog.courses, func(course Course, _ int) string { return course.Id })
}

func (catalog *Catalog) Course(courseId string) (Course, bool) {
	i, ok := catalog.index[courseId]
	if !ok {
		return Course{}, false
	}
	return catalog.courses[i], true
}

func (catalog *Catalog) Offering(courseId, offeringId string) (Offering, bool) {
	course, ok := catalog.Course(courseId)
	if !ok {
		return Offering{}, false
	}
	return course.Offering(offeringId)
}

// Returns "id (name)" when the course is known and named, otherwise the bare id
func (catalog *Catalog) Describe(courseId string) string {
	course, ok := catalog.Course(courseId)
	if ok && course.Name != "" {
		return fmt.Sprintf("%v (%v)", courseId, course.Name)
	}
	return courseId
}

// Assignment places a course's offering in a zero-based term. A negative term means the course is not scheduled
type Assignment struct {
	Course   string
	Offering string
	Term     int
}

func (assignment Assignment) Scheduled() bool {
	return assignment.Term >= 0
}
