package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawOffering struct {
	Id      string  `mapstructure:"id" validate:"required"`
	Teacher string  `mapstructure:"teacher"`
	Times   []int64 `mapstructure:"times" validate:"max=7,dive,gte=0"`
	Weeks   *int64  `mapstructure:"weeks" validate:"omitempty,gte=0,lte=4294967295"`
}

type RawCourse struct {
	Id            string        `mapstructure:"id" validate:"required"`
	Name          string        `mapstructure:"name"`
	Credit        int           `mapstructure:"credit" validate:"gte=0"`
	Required      any           `mapstructure:"required"`
	Prerequisites []string      `mapstructure:"prerequisites" validate:"dive,required"`
	Offerings     []RawOffering `mapstructure:"offerings" validate:"dive"`
}

type RawAssignment struct {
	Course   string `mapstructure:"course_id" validate:"required"`
	Offering string `mapstructure:"class_id"`
	Term     *int   `mapstructure:"semester"`
}

// Both spellings are found in the wild; the value under the alias is moved to the canonical key when the latter is absent
var (
	courseAliases     = map[string]string{"course_id": "id", "course_name": "name"}
	offeringAliases   = map[string]string{"class_id": "id"}
	assignmentAliases = map[string]string{"id": "course_id", "class": "class_id"}
)

var validate = validator.New()

func CatalogFromJson(file string) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}
	return CatalogFromJsonBytes(bytes)
}

func CatalogFromJsonBytes(bytes []byte) (*Catalog, error) {
	records, err := jsonRecords(bytes)
	if err != nil {
		return nil, fmt.Errorf("malformed catalog: %w", err)
	}

	rawCourses := make([]RawCourse, 0, len(records))
	for i, record := range records {
		normalizeKeys(record, courseAliases)

		if offerings, ok := record["offerings"].([]any); ok {
			for j, offering := range offerings {
				offeringRecord, ok := offering.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("malformed catalog: offering %d of course record %d is not an object", j, i)
				}
				normalizeKeys(offeringRecord, offeringAliases)
			}
		}

		var rawCourse RawCourse
		if err := decodeRecord(record, &rawCourse); err != nil {
			return nil, fmt.Errorf("malformed catalog: course record %d: %w", i, err)
		}
		rawCourses = append(rawCourses, rawCourse)
	}

	return ProcessRawCatalog(rawCourses)
}

func ProcessRawCatalog(rawCourses []RawCourse) (*Catalog, error) {
	courses := make([]Course, 0, len(rawCourses))

	for i, rawCourse := range rawCourses {
		if err := validate.Struct(rawCourse); err != nil {
			return nil, fmt.Errorf("invalid course record %d: %w", i, err)
		}

		course := Course{
			Id:            rawCourse.Id,
			Name:          rawCourse.Name,
			Credit:        rawCourse.Credit,
			Required:      isRequired(rawCourse.Required),
			Prerequisites: lo.Uniq(rawCourse.Prerequisites), // A repeated prerequisite must count once towards the in-degree
			Offerings:     make([]Offering, 0, len(rawCourse.Offerings)),
		}

		for _, rawOffering := range rawCourse.Offerings {
			if _, exists := course.Offering(rawOffering.Id); exists {
				return nil, fmt.Errorf("duplicate offering \"%v\" in course \"%v\"", rawOffering.Id, course.Id)
			}

			offering := Offering{
				Id:      rawOffering.Id,
				Course:  course.Id,
				Teacher: rawOffering.Teacher,
			}
			// An offering without a week pattern meets in no week, so the plan validator never reports it as conflicting
			if rawOffering.Weeks != nil {
				offering.Weeks = WeekMask(*rawOffering.Weeks)
			}

			for day, mask := range rawOffering.Times {
				if mask > int64(AllSlots) {
					return nil, fmt.Errorf("offering \"%v\" of course \"%v\" uses slots beyond the %v available on %v: %b", offering.Id, course.Id, SlotsPerDay, DayNames[day], mask)
				}
				offering.Times[day] = SlotMask(mask)
			}

			course.Offerings = append(course.Offerings, offering)
		}

		courses = append(courses, course)
	}

	return NewCatalog(courses)
}

func PlanFromJson(file string) (Plan, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read plan file: %w", err)
	}
	return PlanFromJsonBytes(bytes)
}

func PlanFromJsonBytes(bytes []byte) (Plan, error) {
	records, err := jsonRecords(bytes)
	if err != nil {
		return nil, fmt.Errorf("malformed plan: %w", err)
	}

	plan := make(Plan, 0, len(records))
	for i, record := range records {
		normalizeKeys(record, assignmentAliases)

		var rawAssignment RawAssignment
		if err := decodeRecord(record, &rawAssignment); err != nil {
			return nil, fmt.Errorf("malformed plan: record %d: %w", i, err)
		}
		if err := validate.Struct(rawAssignment); err != nil {
			return nil, fmt.Errorf("invalid plan record %d: %w", i, err)
		}

		term := -1 // Records without a term are not scheduled
		if rawAssignment.Term != nil {
			term = *rawAssignment.Term
		}
		plan = append(plan, Assignment{
			Course:   rawAssignment.Course,
			Offering: rawAssignment.Offering,
			Term:     term,
		})
	}

	return plan, nil
}

type exportedAssignment struct {
	Course   string `json:"course_id"`
	Offering string `json:"class_id"`
	Term     int    `json:"semester"`
}

func MarshalPlan(plan Plan) ([]byte, error) {
	exported := lo.Map(plan, func(assignment Assignment, _ int) exportedAssignment {
		return exportedAssignment{
			Course:   assignment.Course,
			Offering: assignment.Offering,
			Term:     assignment.Term,
		}
	})
	return json.MarshalIndent(exported, "", "    ")
}

func PlanToJson(plan Plan, file string) error {
	bytes, err := MarshalPlan(plan)
	if err != nil {
		return fmt.Errorf("cannot encode plan: %w", err)
	}
	if err := os.WriteFile(file, bytes, 0666); err != nil {
		return fmt.Errorf("cannot write plan file: %w", err)
	}
	return nil
}

func decodeRecord(record map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: rejectFractions,
		Result:     result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(record)
}

// JSON numbers arrive as float64; integer fields must not silently drop a fractional part
func rejectFractions(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if number := data.(float64); number != math.Trunc(number) {
			return nil, fmt.Errorf("%v is not an integer", number)
		}
	}
	return data, nil
}

func jsonRecords(bytes []byte) ([]map[string]any, error) {
	var document any
	if err := json.Unmarshal(bytes, &document); err != nil {
		return nil, err
	}

	elements, ok := document.([]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be an array")
	}

	records := make([]map[string]any, 0, len(elements))
	for i, element := range elements {
		record, ok := element.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		records = append(records, record)
	}
	return records, nil
}

func normalizeKeys(record map[string]any, aliases map[string]string) {
	for alias, canonical := range aliases {
		value, ok := record[alias]
		if !ok {
			continue
		}
		if _, exists := record[canonical]; !exists {
			record[canonical] = value
		}
		delete(record, alias)
	}
}

func isRequired(value any) bool {
	switch required := value.(type) {
	case bool:
		return required
	case string:
		return strings.EqualFold(required, "compulsory") || strings.EqualFold(required, "required")
	default:
		return false
	}
}
