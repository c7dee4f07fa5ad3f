package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/limaJavier/courseplanning/pkg/model"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	resultsFile = "benchmark_results.csv"
	seed        = 7
	repetitions = 5
)

var catalogSizes = []int{10, 50, 100, 250, 500, 1000}

type TestMetadata struct {
	Courses   int
	Offerings int
}

type BenchmarkResult struct {
	Test        TestMetadata
	Placed      int
	Diagnostics int
	Generate    time.Duration
	Validate    time.Duration
}

func main() {
	random := rand.New(rand.NewSource(seed))
	scheduler := model.NewGreedyScheduler(zerolog.Nop())
	validator := model.NewPlanValidator()
	results := make([]BenchmarkResult, 0, len(catalogSizes)*repetitions)

	for _, size := range catalogSizes {
		for range repetitions {
			catalog, err := randomCatalog(random, size)
			if err != nil {
				log.Fatalf("cannot build catalog: %v", err)
			}
			fmt.Printf("Benchmarking catalog with %v courses\n", size)
			results = append(results, measure(scheduler, validator, catalog, randomParameters(random, catalog)))
		}
	}

	file, err := os.Create(resultsFile)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(results, file); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}
}

func measure(scheduler model.Scheduler, validator model.PlanValidator, catalog *model.Catalog, parameters model.Parameters) BenchmarkResult {
	start := time.Now()
	plan := scheduler.Generate(catalog, parameters)
	generateDuration := time.Since(start)

	start = time.Now()
	report := validator.Validate(catalog, plan)
	validateDuration := time.Since(start)

	return BenchmarkResult{
		Test: TestMetadata{
			Courses:   catalog.Len(),
			Offerings: lo.SumBy(catalog.Courses(), func(course model.Course) int { return len(course.Offerings) }),
		},
		Placed:      len(plan),
		Diagnostics: len(report.Diagnostics),
		Generate:    generateDuration,
		Validate:    validateDuration,
	}
}

// Course i only depends on courses with a smaller index, so catalogs are acyclic
func randomCatalog(random *rand.Rand, size int) (*model.Catalog, error) {
	courses := make([]model.Course, 0, size)
	for i := range size {
		courseId := "C" + strconv.Itoa(i)

		prerequisites := make([]string, 0)
		for range random.Intn(3) {
			if i > 0 {
				prerequisites = append(prerequisites, "C"+strconv.Itoa(random.Intn(i)))
			}
		}

		offerings := make([]model.Offering, 0)
		for j := range 1 + random.Intn(3) {
			var times [model.DaysPerWeek]model.SlotMask
			for range 1 + random.Intn(2) {
				start := random.Intn(model.SlotsPerDay - 1)
				times[random.Intn(5)] |= 0b11 << start
			}
			offerings = append(offerings, model.Offering{
				Id:     courseId + "-" + strconv.Itoa(j),
				Course: courseId,
				Times:  times,
				Weeks:  model.AllWeeks,
			})
		}

		courses = append(courses, model.Course{
			Id:            courseId,
			Name:          "Course " + strconv.Itoa(i),
			Credit:        1 + random.Intn(6),
			Prerequisites: lo.Uniq(prerequisites),
			Offerings:     offerings,
		})
	}
	return model.NewCatalog(courses)
}

func randomParameters(random *rand.Rand, catalog *model.Catalog) model.Parameters {
	parameters := model.NewParameters()
	for term := range model.MaxTerms {
		_ = parameters.SetCreditCap(term, 20+random.Intn(10))
	}
	parameters.SetTotalCreditTarget(catalog.Len() * 6)
	for _, courseId := range catalog.Ids() {
		_ = parameters.SetPriority(courseId, random.Intn(model.MaxPriority+1))
	}
	return parameters
}

func toCsv(results []BenchmarkResult, output io.Writer) error {
	writer := csv.NewWriter(output)

	header := []string{"courses", "offerings", "placed", "diagnostics", "generate_ns", "validate_ns"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Offerings),
			fmt.Sprintf("%d", result.Placed),
			fmt.Sprintf("%d", result.Diagnostics),
			fmt.Sprintf("%d", result.Generate.Nanoseconds()),
			fmt.Sprintf("%d", result.Validate.Nanoseconds()),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
