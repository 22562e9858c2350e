package optimize

import (
	"github.com/shaiso/Optimata/internal/graph"
)

// Inline подставляет значения литеральных задач напрямую в их
// потребителей и удаляет освободившиеся задачи из графа.
//
// keys — множество ключей для подстановки. Если nil, берётся
// множество по умолчанию: каждый ключ, чья задача — Literal.
// Вызывающий код может передать и нелитеральные ключи: тогда в
// потребителей подставляется всё тело задачи как подвыражение.
//
// outputs — запрошенные выходные ключи: такой ключ после подстановки
// из графа не удаляется, он должен остаться адресуемым.
//
// deps — карта зависимостей графа; если nil, вычисляется заново.
// Используется только для отбора задач, которые вообще ссылаются
// на подставляемые ключи.
//
// Литеральные константы ничего не стоит продублировать, а устранение
// выделенной задачи убирает по ребру на каждого потребителя.
func Inline(g graph.Graph, keys []graph.Key, outputs []graph.Key, deps map[graph.Key]graph.KeySet) graph.Graph {
	inlineSet := make(graph.KeySet)
	if keys == nil {
		for k, t := range g {
			if _, ok := t.(graph.Literal); ok {
				inlineSet.Add(k)
			}
		}
	} else {
		for _, k := range keys {
			if g.Has(k) {
				inlineSet.Add(k)
			}
		}
	}

	if inlineSet.Len() == 0 {
		return g
	}

	if deps == nil {
		deps = graph.Dependencies(g)
	}

	outSet := graph.NewKeySet(outputs...)

	// Подставляемые ключи могут ссылаться друг на друга (при явном
	// allow-list). Сначала разрешаем их тела между собой: граф
	// ацикличен, поэтому рекурсия с мемоизацией завершается.
	resolved := make(map[graph.Key]graph.Task, inlineSet.Len())
	var resolve func(k graph.Key) graph.Task
	resolve = func(k graph.Key) graph.Task {
		if body, ok := resolved[k]; ok {
			return body
		}
		body := graph.CopyTask(g[k])
		for ref := range graph.Refs(body) {
			if inlineSet.Has(ref) {
				body = graph.Substitute(body, ref, resolve(ref))
			}
		}
		resolved[k] = body
		return body
	}
	for k := range inlineSet {
		resolve(k)
	}

	out := make(graph.Graph, len(g))
	for k, t := range g {
		if inlineSet.Has(k) {
			// Подставленная задача исчезает, если она не выход.
			if outSet.Has(k) {
				out[k] = resolved[k]
			}
			continue
		}

		body := t
		for ref := range deps[k] {
			if inlineSet.Has(ref) {
				body = graph.Substitute(body, ref, resolved[ref])
			}
		}
		out[k] = body
	}

	return out
}
