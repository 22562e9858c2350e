package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики оптимизационных проходов и executor'а.
//
// Регистрируются в default registry; CLI отдаёт их через promhttp
// при указании --metrics-addr.
var (
	// PassRemovedTasks — сколько задач удалил каждый проход.
	PassRemovedTasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optimata",
		Subsystem: "optimize",
		Name:      "pass_removed_tasks_total",
		Help:      "Number of tasks removed from the graph by each optimization pass.",
	}, []string{"pass"})

	// OptimizeDuration — длительность полного пайплайна оптимизации.
	OptimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "optimata",
		Subsystem: "optimize",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of the full optimization pipeline.",
		Buckets:   prometheus.DefBuckets,
	})

	// TasksExecuted — сколько задач вычислил executor.
	TasksExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optimata",
		Subsystem: "executor",
		Name:      "tasks_executed_total",
		Help:      "Number of tasks evaluated by the executor.",
	})

	// ExecuteFailures — сколько запусков завершилось ошибкой.
	ExecuteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optimata",
		Subsystem: "executor",
		Name:      "run_failures_total",
		Help:      "Number of execute calls aborted by a task failure.",
	})

	// ExecuteDuration — длительность одного запуска execute.
	ExecuteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "optimata",
		Subsystem: "executor",
		Name:      "run_duration_seconds",
		Help:      "Duration of a single execute call.",
		Buckets:   prometheus.DefBuckets,
	})
)
