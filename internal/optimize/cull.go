package optimize

import (
	"fmt"

	"github.com/shaiso/Optimata/internal/graph"
)

// Cull удаляет задачи, недостижимые из выходных ключей.
//
// Обход в ширину от outputs по отношению зависимостей; в результате
// остаётся ровно достижимое множество. Ключ из outputs сохраняется
// всегда, даже если от него никто не зависит. Результат — множество,
// порядок outputs на него не влияет, поэтому Cull идемпотентен.
//
// Вместе с новым графом возвращается свежая карта зависимостей,
// ограниченная оставшимися ключами.
//
// Выходной ключ, отсутствующий в графе, — ошибка валидации,
// поднимаемая до начала обхода.
func Cull(g graph.Graph, outputs []graph.Key) (graph.Graph, map[graph.Key]graph.KeySet, error) {
	for _, k := range outputs {
		if !g.Has(k) {
			return nil, nil, graph.NewValidationError(k, "outputs",
				fmt.Sprintf("requested output key not in graph: %s", k), graph.ErrMissingOutput)
		}
	}

	seen := graph.NewKeySet(outputs...)
	queue := make([]graph.Key, len(outputs))
	copy(queue, outputs)

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]

		for ref := range graph.Refs(g[k]) {
			if seen.Has(ref) || !g.Has(ref) {
				continue
			}
			seen.Add(ref)
			queue = append(queue, ref)
		}
	}

	out := make(graph.Graph, seen.Len())
	deps := make(map[graph.Key]graph.KeySet, seen.Len())
	for k := range seen {
		out[k] = g[k]
		deps[k] = graph.Refs(g[k])
	}

	return out, deps, nil
}
