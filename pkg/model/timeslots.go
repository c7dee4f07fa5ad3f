package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var DayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Returns the slots set in the mask, in ascending order
func (mask SlotMask) Slots() []int {
	slots := make([]int, 0, SlotsPerDay)
	for slot := range SlotsPerDay {
		if mask&(1<<slot) != 0 {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Builds a mask out of slot numbers, failing on slots outside of the day
func SlotMaskOf(slots ...int) (SlotMask, error) {
	var mask SlotMask
	for _, slot := range slots {
		if slot < 0 || slot >= SlotsPerDay {
			return 0, fmt.Errorf("slot %v is out of range [0, %v)", slot, SlotsPerDay)
		}
		mask |= 1 << slot
	}
	return mask, nil
}

// Returns the start and end of a slot as "HH:MM"
func SlotSpan(slot int) (start, end string) {
	startMinute := FirstSlotMinute + slot*SlotMinutes
	endMinute := startMinute + SlotMinutes
	return clock(startMinute), clock(endMinute)
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// Renders the offering's weekly pattern, e.g. "Mon: 08:00-08:45, 08:45-09:30; Wed: 10:15-11:00"
func (offering Offering) TimeSlotsString() string {
	parts := make([]string, 0, DaysPerWeek)
	for day, mask := range offering.Times {
		if mask == 0 {
			continue
		}
		spans := lo.Map(mask.Slots(), func(slot int, _ int) string {
			start, end := SlotSpan(slot)
			return start + "-" + end
		})
		parts = append(parts, DayNames[day]+": "+strings.Join(spans, ", "))
	}
	return strings.Join(parts, "; ")
}
