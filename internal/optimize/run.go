package optimize

import (
	"context"

	"github.com/shaiso/Optimata/internal/executor"
	"github.com/shaiso/Optimata/internal/graph"
)

// Run оптимизирует граф и сразу вычисляет запрошенные ключи.
//
// Эквивалент последовательного вызова Optimize и executor.Execute
// с одними и теми же keys: стандартная точка входа для кода, которому
// не нужен промежуточный граф. Значения возвращаются в порядке keys.
func Run(ctx context.Context, g graph.Graph, keys []graph.Key, opts Options, reg *executor.Registry) ([]any, error) {
	optimized, err := Optimize(g, keys, opts)
	if err != nil {
		return nil, err
	}
	return executor.Execute(ctx, optimized, keys, reg)
}
