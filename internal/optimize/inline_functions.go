package optimize

import (
	"github.com/shaiso/Optimata/internal/graph"
)

// InlineFunctions подставляет дешёвые вызовы функций напрямую
// в их единственного потребителя.
//
// Задача k с Apply(fn, args) — кандидат на подстановку, когда
// выполняются все условия:
//   - fn входит в allow-list fast (явное признание, что дублирование
//     пересчёта допустимо)
//   - у k ровно один зависимый: при fan-out > 1 подстановка
//     дублировала бы вычисление на каждого потребителя и раздувала
//     бы итоговые задачи
//   - k не входит в outputs: выходы должны оставаться адресуемыми
//
// Кандидат встраивается в тело потребителя на место Ref(k), после
// чего k удаляется из графа. Цепочки кандидатов сворачиваются
// транзитивно до неподвижной точки: подряд идущие allow-listed
// вызовы складываются в одно вложенное выражение.
//
// deps — карта зависимостей входного графа; если nil, вычисляется.
// Отсутствие кандидатов — не ошибка: возвращается входной граф.
func InlineFunctions(g graph.Graph, outputs []graph.Key, fast []string, deps map[graph.Key]graph.KeySet) graph.Graph {
	if len(fast) == 0 {
		return g
	}

	fastSet := make(map[string]bool, len(fast))
	for _, fn := range fast {
		fastSet[fn] = true
	}

	outSet := graph.NewKeySet(outputs...)

	for {
		candidates := collectInlinable(g, fastSet, outSet, deps)
		if len(candidates) == 0 {
			return g
		}

		g = Inline(g, candidates, outputs, deps)
		// Карта зависимостей устарела вместе со старым графом.
		deps = nil
	}
}

// collectInlinable возвращает ключи-кандидаты на подстановку
// в отсортированном порядке.
func collectInlinable(g graph.Graph, fast map[string]bool, outputs graph.KeySet, deps map[graph.Key]graph.KeySet) []graph.Key {
	if deps == nil {
		deps = graph.Dependencies(g)
	}
	dependents := graph.Dependents(deps)

	set := make(graph.KeySet)
	for k, t := range g {
		apply, ok := t.(graph.Apply)
		if !ok {
			continue
		}
		if !fast[apply.Fn] {
			continue
		}
		if outputs.Has(k) {
			continue
		}
		if dependents[k].Len() != 1 {
			continue
		}
		set.Add(k)
	}

	return set.Sorted()
}
