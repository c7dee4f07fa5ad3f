package model

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCreditCap = 500
	DefaultPriority  = 5
	MinPriority      = 0
	MaxPriority      = 10
	// Courses at or above this priority are scheduled even when they're not selected
	InclusionPriority = 5
)

// Parameters is the caller-owned bundle that steers a scheduling run. The scheduler only reads it,
// so the same bundle can be adjusted and handed to successive runs
type Parameters struct {
	CreditCaps        [MaxTerms]int
	TotalCreditTarget int // Scheduling stops as soon as the placed credits reach this value, 0 included
	Priorities        map[string]int
	BlockedTimes      [MaxTerms][DaysPerWeek]SlotMask
	SelectedCourses   map[string]bool
}

func NewParameters() Parameters {
	parameters := Parameters{
		Priorities:      make(map[string]int),
		SelectedCourses: make(map[string]bool),
	}
	for term := range MaxTerms {
		parameters.CreditCaps[term] = DefaultCreditCap
	}
	return parameters
}

func (parameters Parameters) Clone() Parameters {
	clone := parameters
	clone.Priorities = maps.Clone(parameters.Priorities)
	clone.SelectedCourses = maps.Clone(parameters.SelectedCourses)
	if clone.Priorities == nil {
		clone.Priorities = make(map[string]int)
	}
	if clone.SelectedCourses == nil {
		clone.SelectedCourses = make(map[string]bool)
	}
	return clone
}

func (parameters *Parameters) SetCreditCap(term, limit int) error {
	if err := checkTerm(term); err != nil {
		return err
	}
	parameters.CreditCaps[term] = limit
	return nil
}

func (parameters *Parameters) SetTotalCreditTarget(credits int) {
	parameters.TotalCreditTarget = credits
}

func (parameters *Parameters) SetPriority(courseId string, priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("priority %v of course \"%v\" is out of range [%v, %v]", priority, courseId, MinPriority, MaxPriority)
	}
	if parameters.Priorities == nil {
		parameters.Priorities = make(map[string]int)
	}
	parameters.Priorities[courseId] = priority
	return nil
}

func (parameters Parameters) Priority(courseId string) int {
	if priority, ok := parameters.Priorities[courseId]; ok {
		return priority
	}
	return DefaultPriority
}

// Forces the course into generated plans
func (parameters *Parameters) AddCourse(courseId string) {
	_ = parameters.SetPriority(courseId, MaxPriority)
}

// Keeps the course out of generated plans unless it's selected
func (parameters *Parameters) RemoveCourse(courseId string) {
	_ = parameters.SetPriority(courseId, MinPriority)
}

// Adds the slots in mask to the time already blocked on that term and day
func (parameters *Parameters) AddBlockedTime(term, day int, mask SlotMask) error {
	if err := checkTerm(term); err != nil {
		return err
	}
	if day < 0 || day >= DaysPerWeek {
		return fmt.Errorf("day %v is out of range [0, %v)", day, DaysPerWeek)
	}
	if mask&^AllSlots != 0 {
		return fmt.Errorf("blocked mask %b uses slots beyond the %v available", mask, SlotsPerDay)
	}
	parameters.BlockedTimes[term][day] |= mask
	return nil
}

func (parameters Parameters) BlockedTime(term, day int) SlotMask {
	if term < 0 || term >= MaxTerms || day < 0 || day >= DaysPerWeek {
		return 0
	}
	return parameters.BlockedTimes[term][day]
}

func (parameters *Parameters) SetSelectedCourses(courseIds []string) {
	parameters.SelectedCourses = make(map[string]bool, len(courseIds))
	for _, courseId := range courseIds {
		parameters.SelectedCourses[courseId] = true
	}
}

func (parameters Parameters) Selected(courseId string) bool {
	return parameters.SelectedCourses[courseId]
}

func checkTerm(term int) error {
	if term < 0 || term >= MaxTerms {
		return fmt.Errorf("term %v is out of range [0, %v)", term, MaxTerms)
	}
	return nil
}

type rawBlockedTime struct {
	Term  int   `yaml:"term" validate:"gte=0"`
	Day   int   `yaml:"day" validate:"gte=0"`
	Slots []int `yaml:"slots" validate:"required,dive,gte=0"`
}

type rawParameters struct {
	Selected          []string         `yaml:"selected" validate:"dive,required"`
	Priorities        map[string]int   `yaml:"priorities" validate:"dive,gte=0"`
	CreditCaps        map[int]int      `yaml:"credit_caps" validate:"dive,keys,gte=0,endkeys,gte=0"`
	TotalCreditTarget int              `yaml:"total_credit_target" validate:"gte=0"`
	Blocked           []rawBlockedTime `yaml:"blocked" validate:"dive"`
}

// Reads a parameter file such as:
//
//	selected: [CS101, CS102]
//	priorities: {MATH201: 8}
//	credit_caps: {0: 18, 1: 18}
//	total_credit_target: 60
//	blocked:
//	  - {term: 0, day: 4, slots: [10, 11, 12]}
//
// Omitted settings keep their defaults
func ParametersFromYaml(file string) (Parameters, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Parameters{}, fmt.Errorf("cannot read parameters file: %w", err)
	}
	return ParametersFromYamlBytes(bytes)
}

func ParametersFromYamlBytes(bytes []byte) (Parameters, error) {
	var raw rawParameters
	if err := yaml.Unmarshal(bytes, &raw); err != nil {
		return Parameters{}, fmt.Errorf("malformed parameters: %w", err)
	}
	if err := validate.Struct(raw); err != nil {
		return Parameters{}, fmt.Errorf("invalid parameters: %w", err)
	}

	parameters := NewParameters()
	parameters.SetSelectedCourses(raw.Selected)
	parameters.SetTotalCreditTarget(raw.TotalCreditTarget)
	for courseId, priority := range raw.Priorities {
		if err := parameters.SetPriority(courseId, priority); err != nil {
			return Parameters{}, err
		}
	}
	for term, limit := range raw.CreditCaps {
		if err := parameters.SetCreditCap(term, limit); err != nil {
			return Parameters{}, err
		}
	}
	for _, blocked := range raw.Blocked {
		mask, err := SlotMaskOf(blocked.Slots...)
		if err != nil {
			return Parameters{}, err
		}
		if err := parameters.AddBlockedTime(blocked.Term, blocked.Day, mask); err != nil {
			return Parameters{}, err
		}
	}
	return parameters, nil
}

// Checks whether a generated plan may include the course: selected courses always may,
// others only when their priority reaches InclusionPriority
func (parameters Parameters) Eligible(courseId string) bool {
	return parameters.Selected(courseId) || parameters.Priority(courseId) >= InclusionPriority
}
