package executor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shaiso/Optimata/internal/graph"
	"github.com/shaiso/Optimata/internal/telemetry"
)

// ExecuteParallel вычисляет запрошенные ключи, выполняя независимые
// ветви графа на отдельных горутинах.
//
// Наблюдаемые результаты идентичны Execute — это обязательное
// свойство, проверяемое тестами. Гарантии:
//   - каждая задача вычисляется не более одного раза: на ключ
//     создаётся ровно одна горутина, результат коммитится в общую
//     memo-карту под мьютексом до закрытия done-канала ключа
//   - задача не начинает выполняться, пока все её зависимости
//     не закоммитили результат
//   - fail-fast: первый сбой отменяет контекст группы, ещё не
//     начатые задачи не стартуют, уже идущие — дорабатывают;
//     вызывающему возвращается исходная ошибка с ключом задачи
//
// workers ограничивает число одновременно выполняемых задач;
// значение <= 0 означает "без ограничения".
func ExecuteParallel(ctx context.Context, g graph.Graph, keys []graph.Key, reg *Registry, workers int) ([]any, error) {
	order, err := prepare(g, keys, reg)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := telemetry.WithRunID(telemetry.FromContext(ctx), runID)
	logger.Debug("parallel execute started",
		"tasks", len(order),
		"keys", len(keys),
		"workers", workers,
	)

	start := time.Now()

	var mu sync.Mutex
	memo := make(map[graph.Key]any, len(order))

	done := make(map[graph.Key]chan struct{}, len(order))
	for _, k := range order {
		done[k] = make(chan struct{})
	}

	grp, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		grp.SetLimit(workers)
	}

	for _, k := range order {
		k := k
		deps := graph.Refs(g[k])

		grp.Go(func() error {
			// Ждём коммита всех зависимостей.
			for dep := range deps {
				ch, ok := done[dep]
				if !ok {
					continue
				}
				select {
				case <-ch:
				case <-gctx.Done():
					return NewTaskError(k, gctx.Err())
				}
			}

			mu.Lock()
			snapshot := make(map[graph.Key]any, deps.Len())
			for dep := range deps {
				snapshot[dep] = memo[dep]
			}
			mu.Unlock()

			value, err := eval(g[k], snapshot, reg)
			if err != nil {
				telemetry.WithKey(logger, string(k)).Error("task failed", "error", err)
				return NewTaskError(k, err)
			}

			mu.Lock()
			memo[k] = value
			mu.Unlock()
			telemetry.TasksExecuted.Inc()

			close(done[k])
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		telemetry.ExecuteFailures.Inc()
		return nil, err
	}

	telemetry.ExecuteDuration.Observe(time.Since(start).Seconds())
	logger.Debug("parallel execute finished", "duration", time.Since(start))

	out := make([]any, len(keys))
	mu.Lock()
	for i, k := range keys {
		out[i] = memo[k]
	}
	mu.Unlock()

	return out, nil
}
