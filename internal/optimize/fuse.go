package optimize

import (
	"github.com/shaiso/Optimata/internal/graph"
)

// Fuse сворачивает максимальные линейные цепочки зависимостей
// в одну составную задачу.
//
// Линейная цепочка k1 -> k2 -> ... -> kn: у каждого ki (i < n) ровно
// один зависимый, и это k_{i+1}, а k_{i+1} не зависит ни от чего,
// кроме ki (остальные аргументы — литералы). Цепочка сворачивается
// в одну задачу с ключом kn: тело kn, в котором Ref(k_{n-1})
// последовательно замещено телами нижележащих звеньев с сохранением
// исходной привязки аргументов. Внутренние ключи удаляются.
//
// keep — барьеры слияния (обычно запрошенные выходы, при желании
// расширенные промежуточными ключами, которые должны остаться
// адресуемыми). Цепочка никогда не пересекает такой ключ: кандидат,
// который спрятал бы kept-ключ внутрь составной задачи, отбрасывается,
// и несостоявшаяся длинная цепочка распадается на две.
//
// Сворачивание убирает накладные расходы на планирование и передачу
// данных между звеньями; дублирования не возникает — каждый шаг
// по-прежнему выполняется ровно один раз.
//
// Возвращает новый граф и свежую карту зависимостей для него.
func Fuse(g graph.Graph, keep []graph.Key) (graph.Graph, map[graph.Key]graph.KeySet) {
	deps := graph.Dependencies(g)
	dependents := graph.Dependents(deps)
	keepSet := graph.NewKeySet(keep...)

	// fusedInto[c] = p: ребро c -> p допускает слияние.
	fusedInto := make(map[graph.Key]graph.Key)
	// childOf[p] = c: обратная сторона того же ребра.
	childOf := make(map[graph.Key]graph.Key)

	for _, c := range g.Keys() {
		if keepSet.Has(c) {
			// Kept-ключ обязан пережить слияние — внутрь цепочки не идёт.
			continue
		}
		if dependents[c].Len() != 1 {
			continue
		}
		p := dependents[c].Sorted()[0]
		if deps[p].Len() != 1 {
			// У потребителя есть и другие зависимости — ветвление.
			continue
		}
		if countRef(g[p], c) != 1 {
			// Ref(c) встречается в теле потребителя дважды: вложение
			// заставило бы шаг выполняться повторно.
			continue
		}
		fusedInto[c] = p
		childOf[p] = c
	}

	if len(fusedInto) == 0 {
		return g, deps
	}

	out := make(graph.Graph, len(g))
	dropped := make(graph.KeySet)

	for _, k := range g.Keys() {
		if _, isInterior := fusedInto[k]; isInterior {
			dropped.Add(k)
			continue
		}

		child, ok := childOf[k]
		if !ok {
			out[k] = g[k]
			continue
		}

		// k — терминал цепочки: последовательно вкладываем тела
		// звеньев сверху вниз.
		body := graph.CopyTask(g[k])
		for {
			body = graph.Substitute(body, child, g[child])
			next, ok := childOf[child]
			if !ok {
				break
			}
			child = next
		}
		out[k] = body
	}

	newDeps := make(map[graph.Key]graph.KeySet, len(out))
	for k, t := range out {
		newDeps[k] = graph.Refs(t)
	}

	return out, newDeps
}

// countRef возвращает число вхождений Ref(k) в теле задачи.
func countRef(t graph.Task, k graph.Key) int {
	switch task := t.(type) {
	case graph.Ref:
		if task.Key == k {
			return 1
		}
		return 0
	case graph.Apply:
		n := 0
		for _, a := range task.Args {
			n += countRef(a, k)
		}
		return n
	default:
		return 0
	}
}
