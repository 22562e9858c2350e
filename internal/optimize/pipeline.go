package optimize

import (
	"log/slog"
	"time"

	"github.com/shaiso/Optimata/internal/graph"
	"github.com/shaiso/Optimata/internal/telemetry"
)

// Стадии пайплайна. Каждая стадия — чистая функция над графом;
// вызывающий код может подменить любую из них своей реализацией
// с той же сигнатурой или пропустить стадию целиком.
type (
	// CullStage — сигнатура стадии отсечения.
	CullStage func(g graph.Graph, outputs []graph.Key) (graph.Graph, map[graph.Key]graph.KeySet, error)

	// InlineStage — сигнатура стадии подстановки констант.
	InlineStage func(g graph.Graph, outputs []graph.Key, deps map[graph.Key]graph.KeySet) graph.Graph

	// InlineFunctionsStage — сигнатура стадии подстановки функций.
	InlineFunctionsStage func(g graph.Graph, outputs []graph.Key, fast []string, deps map[graph.Key]graph.KeySet) graph.Graph

	// FuseStage — сигнатура стадии слияния цепочек.
	FuseStage func(g graph.Graph, keep []graph.Key) (graph.Graph, map[graph.Key]graph.KeySet)
)

// Options — конфигурация пайплайна оптимизации.
//
// Конфигурация всегда передаётся явно в точку входа и живёт в рамках
// одного запроса; глобального состояния уровня процесса у пакета нет.
// Нулевое значение Options даёт пайплайн по умолчанию без
// подстановки функций и без CSE.
type Options struct {
	// FastFunctions — allow-list имён функций, чьё дублирование
	// при подстановке считается приемлемым. Пустой список
	// отключает стадию inline_functions.
	FastFunctions []string

	// KeepKeys — ключи, которые обязаны остаться адресуемыми
	// помимо выходных: их не подставляют inline-проходы и не
	// прячет внутрь составной задачи слияние цепочек.
	KeepKeys []graph.Key

	// WithCSE включает необязательный проход объединения общих
	// подвыражений перед слиянием цепочек.
	WithCSE bool

	// Cull, Inline, InlineFunctions, Fuse — переопределения стадий.
	// nil означает реализацию по умолчанию из этого пакета.
	Cull            CullStage
	Inline          InlineStage
	InlineFunctions InlineFunctionsStage
	Fuse            FuseStage

	// Logger — логгер пайплайна. nil означает slog.Default().
	Logger *slog.Logger
}

// SkipCull — стадия-пустышка: граф возвращается без отсечения.
func SkipCull(g graph.Graph, _ []graph.Key) (graph.Graph, map[graph.Key]graph.KeySet, error) {
	return g, graph.Dependencies(g), nil
}

// SkipInline — стадия-пустышка: константы не подставляются.
func SkipInline(g graph.Graph, _ []graph.Key, _ map[graph.Key]graph.KeySet) graph.Graph {
	return g
}

// SkipInlineFunctions — стадия-пустышка: функции не подставляются.
func SkipInlineFunctions(g graph.Graph, _ []graph.Key, _ []string, _ map[graph.Key]graph.KeySet) graph.Graph {
	return g
}

// SkipFuse — стадия-пустышка: цепочки не сливаются.
func SkipFuse(g graph.Graph, _ []graph.Key) (graph.Graph, map[graph.Key]graph.KeySet) {
	return g, graph.Dependencies(g)
}

// Optimize прогоняет граф через стандартный пайплайн:
//
//	cull → inline → inline_functions → (cse) → fuse
//
// Каждая стадия возвращает новый граф; вход никогда не мутируется.
// Перед первым проходом граф валидируется: невалидный граф не
// оптимизируется даже частично.
func Optimize(g graph.Graph, outputs []graph.Key, opts Options) (graph.Graph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := graph.Validate(g, nil); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		telemetry.OptimizeDuration.Observe(time.Since(start).Seconds())
	}()

	cull := opts.Cull
	if cull == nil {
		cull = Cull
	}
	inline := opts.Inline
	if inline == nil {
		inline = func(g graph.Graph, outputs []graph.Key, deps map[graph.Key]graph.KeySet) graph.Graph {
			return Inline(g, nil, outputs, deps)
		}
	}
	inlineFunctions := opts.InlineFunctions
	if inlineFunctions == nil {
		inlineFunctions = InlineFunctions
	}
	fuse := opts.Fuse
	if fuse == nil {
		fuse = Fuse
	}

	// Единый набор ключей, переживающих все проходы: выходы плюс
	// KeepKeys. Inline-проходы получают его как множество исключений,
	// слияние — как барьеры.
	keep := make([]graph.Key, 0, len(outputs)+len(opts.KeepKeys))
	keep = append(keep, outputs...)
	keep = append(keep, opts.KeepKeys...)

	g1, deps, err := cull(g, outputs)
	if err != nil {
		return nil, err
	}
	logPass(logger, "cull", len(g), len(g1))

	g2 := inline(g1, keep, deps)
	logPass(logger, "inline", len(g1), len(g2))

	g3 := inlineFunctions(g2, keep, opts.FastFunctions, nil)
	logPass(logger, "inline_functions", len(g2), len(g3))

	if opts.WithCSE {
		before := len(g3)
		g3 = CommonSubexpressions(g3)
		logPass(logger, "cse", before, len(g3))
	}

	g4, _ := fuse(g3, keep)
	logPass(logger, "fuse", len(g3), len(g4))

	return g4, nil
}

// logPass логирует результат прохода и обновляет метрики.
func logPass(logger *slog.Logger, pass string, before, after int) {
	if removed := before - after; removed > 0 {
		telemetry.PassRemovedTasks.WithLabelValues(pass).Add(float64(removed))
	}
	telemetry.WithPass(logger, pass).Debug("pass finished",
		"tasks_before", before,
		"tasks_after", after,
	)
}
