package executor

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Optimata/internal/graph"
	"github.com/shaiso/Optimata/internal/telemetry"
)

// Execute последовательно вычисляет запрошенные ключи графа.
//
// Граф валидируется, затем строится детерминированный топологический
// порядок, ограниченный транзитивным замыканием зависимостей keys,
// и каждая задача вычисляется ровно один раз:
//   - Literal даёт своё значение
//   - Ref даёт уже вычисленное значение (гарантировано порядком)
//   - Apply рекурсивно разрешает аргументы и вызывает функцию из реестра
//
// Результаты мемоизируются в карте "ключ → значение" на время одного
// вызова; между вызовами ничего не сохраняется.
//
// Возвращает значения в порядке keys. Сбой любой задачи прерывает
// оставшееся расписание: ошибка оборачивается в TaskError с ключом
// задачи, частичные результаты не возвращаются.
func Execute(ctx context.Context, g graph.Graph, keys []graph.Key, reg *Registry) ([]any, error) {
	memo, err := run(ctx, g, keys, reg)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = memo[k]
	}
	return out, nil
}

// run выполняет общую для Execute подготовку и последовательный прогон.
func run(ctx context.Context, g graph.Graph, keys []graph.Key, reg *Registry) (map[graph.Key]any, error) {
	order, err := prepare(g, keys, reg)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := telemetry.WithRunID(telemetry.FromContext(ctx), runID)
	logger.Debug("execute started", "tasks", len(order), "keys", len(keys))

	start := time.Now()
	memo := make(map[graph.Key]any, len(order))

	for _, k := range order {
		if err := ctx.Err(); err != nil {
			telemetry.ExecuteFailures.Inc()
			return nil, NewTaskError(k, err)
		}

		value, err := eval(g[k], memo, reg)
		if err != nil {
			telemetry.ExecuteFailures.Inc()
			telemetry.WithKey(logger, string(k)).Error("task failed", "error", err)
			return nil, NewTaskError(k, err)
		}

		memo[k] = value
		telemetry.TasksExecuted.Inc()
	}

	telemetry.ExecuteDuration.Observe(time.Since(start).Seconds())
	logger.Debug("execute finished", "duration", time.Since(start))

	return memo, nil
}

// prepare валидирует вход и возвращает топологический порядок,
// ограниченный транзитивным замыканием зависимостей keys.
func prepare(g graph.Graph, keys []graph.Key, reg *Registry) ([]graph.Key, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	if err := graph.Validate(g, nil); err != nil {
		return nil, err
	}
	for _, k := range keys {
		if !g.Has(k) {
			return nil, graph.NewValidationError(k, "keys",
				"requested output key not in graph: "+string(k), graph.ErrMissingOutput)
		}
	}

	return topoOrder(g, keys), nil
}

// topoOrder возвращает детерминированный топологический порядок
// замыкания keys (алгоритм Кана, очередь отсортирована по ключу).
func topoOrder(g graph.Graph, keys []graph.Key) []graph.Key {
	// Замыкание по зависимостям.
	closure := graph.NewKeySet(keys...)
	stack := make([]graph.Key, len(keys))
	copy(stack, keys)
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for ref := range graph.Refs(g[k]) {
			if !g.Has(ref) || closure.Has(ref) {
				continue
			}
			closure.Add(ref)
			stack = append(stack, ref)
		}
	}

	// Входящие степени внутри замыкания.
	inDegree := make(map[graph.Key]int, closure.Len())
	dependents := make(map[graph.Key][]graph.Key, closure.Len())
	for k := range closure {
		n := 0
		for ref := range graph.Refs(g[k]) {
			if closure.Has(ref) {
				n++
				dependents[ref] = append(dependents[ref], k)
			}
		}
		inDegree[k] = n
	}

	queue := make([]graph.Key, 0, closure.Len())
	for k := range closure {
		if inDegree[k] == 0 {
			queue = append(queue, k)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	order := make([]graph.Key, 0, closure.Len())
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		order = append(order, k)

		ready := make([]graph.Key, 0)
		for _, dep := range dependents[k] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		queue = append(queue, ready...)
	}

	return order
}

// eval вычисляет одно тело задачи.
//
// memo содержит значения всех ключей, стоящих раньше в топологическом
// порядке; вложенные Apply вычисляются на месте, внутри задачи-носителя.
func eval(t graph.Task, memo map[graph.Key]any, reg *Registry) (any, error) {
	switch task := t.(type) {
	case graph.Literal:
		return task.Value, nil
	case graph.Ref:
		return memo[task.Key], nil
	case graph.Apply:
		fn, err := reg.Get(task.Fn)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(task.Args))
		for i, a := range task.Args {
			v, err := eval(a, memo, reg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn(args...)
	default:
		return nil, ErrBadArgument
	}
}
