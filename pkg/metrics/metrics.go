package metrics

import (
	"fmt"
	"time"

	"github.com/limaJavier/courseplanning/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
)

const namespace = "courseplanning"

// Recorder counts scheduling and validation runs and their outcomes
type Recorder struct {
	generations prometheus.Counter
	placed      prometheus.Counter
	unplaced    prometheus.Counter
	validations *prometheus.CounterVec
	diagnostics prometheus.Counter
	duration    *prometheus.HistogramVec
}

func NewRecorder(registerer prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer)
	return &Recorder{
		generations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Number of generated plans.",
		}),
		placed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "courses_placed_total",
			Help:      "Courses placed in a term by the scheduler.",
		}),
		unplaced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "courses_unplaced_total",
			Help:      "Eligible courses the scheduler left out of the plan.",
		}),
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Number of validated plans by verdict.",
		}, []string{"result"}),
		diagnostics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics reported by the plan validator.",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of generate and validate calls.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"operation"}),
	}
}

// Eligible courses that are absent from the plan count as unplaced, including those cut off by the credit target
func (recorder *Recorder) ObserveGeneration(catalog *model.Catalog, parameters model.Parameters, plan model.Plan, elapsed time.Duration) {
	eligible := lo.CountBy(catalog.Ids(), parameters.Eligible)

	recorder.generations.Inc()
	recorder.placed.Add(float64(len(plan)))
	recorder.unplaced.Add(float64(max(eligible-len(plan), 0)))
	recorder.duration.WithLabelValues("generate").Observe(elapsed.Seconds())
}

func (recorder *Recorder) ObserveValidation(report model.Report, elapsed time.Duration) {
	result := "ok"
	if !report.OK {
		result = "failed"
	}
	recorder.validations.WithLabelValues(result).Inc()
	recorder.diagnostics.Add(float64(len(report.Diagnostics)))
	recorder.duration.WithLabelValues("validate").Observe(elapsed.Seconds())
}

// Writes the gathered metrics in the text exposition format, as expected by node_exporter's textfile collector
func WriteTextfile(file string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(file, gatherer); err != nil {
		return fmt.Errorf("cannot write metrics file: %w", err)
	}
	return nil
}
