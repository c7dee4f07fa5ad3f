package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotConflictDetector(t *testing.T) {
	detector := newConflictDetector(false)

	mondayMorning := newTestOffering("1", monday, 0, 1)
	mondayOverlap := newTestOffering("2", monday, 1, 2)
	tuesdayMorning := newTestOffering("3", tuesday, 0, 1)

	assert.True(t, detector.Conflict(mondayMorning, mondayOverlap))
	assert.True(t, detector.Conflict(mondayOverlap, mondayMorning))
	assert.False(t, detector.Conflict(mondayMorning, tuesdayMorning))

	// Week patterns don't matter to the scheduler
	mondayOverlap.Weeks = 0b1100
	mondayMorning.Weeks = 0b0011
	assert.True(t, detector.Conflict(mondayMorning, mondayOverlap))
}

func TestWeekConflictDetector(t *testing.T) {
	detector := newConflictDetector(true)

	firstHalf := newTestOffering("1", wednesday, 4)
	firstHalf.Weeks = 0x00FF
	secondHalf := newTestOffering("2", wednesday, 4)
	secondHalf.Weeks = 0xFF00
	everyWeek := newTestOffering("3", wednesday, 4, 5)
	otherSlot := newTestOffering("4", wednesday, 6)

	assert.False(t, detector.Conflict(firstHalf, secondHalf), "disjoint weeks never conflict")
	assert.True(t, detector.Conflict(firstHalf, everyWeek))
	assert.True(t, detector.Conflict(secondHalf, everyWeek))
	assert.False(t, detector.Conflict(everyWeek, otherSlot), "disjoint slots never conflict")

	noWeeks := newTestOffering("5", wednesday, 4)
	noWeeks.Weeks = 0
	assert.False(t, detector.Conflict(noWeeks, everyWeek))
}

func TestBlocked(t *testing.T) {
	for _, weekAware := range []bool{false, true} {
		detector := newConflictDetector(weekAware)
		var blocked [DaysPerWeek]SlotMask
		blocked[tuesday] = 0b110

		assert.True(t, detector.Blocked(newTestOffering("1", tuesday, 2), blocked))
		assert.False(t, detector.Blocked(newTestOffering("2", tuesday, 0, 3), blocked))
		assert.False(t, detector.Blocked(newTestOffering("3", monday, 1, 2), blocked))
	}
}
