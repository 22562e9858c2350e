package graph

// Dependencies возвращает для каждого ключа множество ключей,
// на которые его задача ссылается напрямую (не транзитивно).
//
// Структурный обход собирает каждый Ref, включая вложенные в
// аргументы Apply; Literal-листья игнорируются. Чистая функция
// графа: пересчитывается заново после каждого rewrite-прохода.
func Dependencies(g Graph) map[Key]KeySet {
	deps := make(map[Key]KeySet, len(g))
	for k, t := range g {
		deps[k] = Refs(t)
	}
	return deps
}

// Dependents возвращает обратное отображение: для каждого ключа —
// множество ключей, чьи задачи на него ссылаются.
//
// Ключи без зависимых получают пустое множество, чтобы вызывающему
// коду не нужно было различать nil и пустоту.
func Dependents(deps map[Key]KeySet) map[Key]KeySet {
	out := make(map[Key]KeySet, len(deps))
	for k := range deps {
		out[k] = make(KeySet)
	}
	for k, set := range deps {
		for dep := range set {
			if _, ok := out[dep]; !ok {
				out[dep] = make(KeySet)
			}
			out[dep].Add(k)
		}
	}
	return out
}
