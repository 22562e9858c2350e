package graph

import (
	"fmt"
	"strings"
)

// Цвета DFS-обхода при поиске циклов.
const (
	white = 0 // узел не посещался
	gray  = 1 // узел в текущем стеке обхода
	black = 2 // узел полностью обработан
)

// Validate выполняет полную валидацию графа.
//
// Проверяет:
//   - Непустоту графа и ключей
//   - Отсутствие висячих ссылок (Ref на отсутствующий ключ)
//   - Отсутствие self-reference
//   - Ацикличность отношения зависимостей
//
// external — ключи, объявленные как поставляемые извне: ссылки на них
// не считаются висячими. Может быть nil.
//
// Возвращает ValidationError с контекстом первой найденной проблемы.
// Сложность O(V+E).
func Validate(g Graph, external KeySet) error {
	if len(g) == 0 {
		return ErrEmptyGraph
	}

	// Проверяем ключи и ссылки
	for _, k := range g.Keys() {
		if k == "" {
			return NewValidationError("", "key", "task has empty key", ErrEmptyKey)
		}

		for ref := range Refs(g[k]) {
			if ref == k {
				return NewValidationError(k, "refs",
					"task references itself", ErrSelfReference)
			}
			if !g.Has(ref) && !external.Has(ref) {
				return NewValidationError(k, "refs",
					fmt.Sprintf("references unknown key: %s", ref), ErrMissingKey)
			}
		}
	}

	// Проверяем на циклы
	if cycle := findCycle(g); cycle != nil {
		parts := make([]string, len(cycle))
		for i, k := range cycle {
			parts[i] = string(k)
		}
		return NewValidationError(cycle[0], "refs",
			fmt.Sprintf("dependency cycle: %s", strings.Join(parts, " -> ")), ErrCycle)
	}

	return nil
}

// findCycle ищет цикл в отношении зависимостей обходом в глубину
// с раскраской узлов (white/gray/black).
//
// Повторный заход в gray-узел означает back-edge, то есть цикл.
// Возвращается один детерминированный цикл-свидетель в прямом порядке
// (замкнутый: первый и последний ключ совпадают) либо nil.
func findCycle(g Graph) []Key {
	color := make(map[Key]int, len(g))
	parent := make(map[Key]Key, len(g))

	var cycle []Key

	var dfs func(k Key) bool
	dfs = func(k Key) bool {
		color[k] = gray
		for _, ref := range Refs(g[k]).Sorted() {
			if !g.Has(ref) {
				// Внешний ключ: зависимостей внутри графа не несёт.
				continue
			}
			switch color[ref] {
			case white:
				parent[ref] = k
				if dfs(ref) {
					return true
				}
			case gray:
				// Back-edge k -> ref. Восстанавливаем путь ref ... k -> ref.
				cycle = append(cycle, ref)
				cur := k
				for cur != ref {
					cycle = append(cycle, cur)
					cur = parent[cur]
				}
				cycle = append(cycle, ref)
				return true
			}
		}
		color[k] = black
		return false
	}

	for _, k := range g.Keys() {
		if color[k] != white {
			continue
		}
		if dfs(k) {
			break
		}
	}

	if cycle == nil {
		return nil
	}

	// Путь собран в обратном порядке; разворачиваем.
	out := make([]Key, len(cycle))
	for i := range cycle {
		out[i] = cycle[len(cycle)-1-i]
	}
	return out
}
