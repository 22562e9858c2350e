// Package executor вычисляет граф задач.
//
// Включает:
//   - registry.go — реестр функций по имени из Apply
//   - builtins.go — стандартный набор функций для CLI и тестов
//   - executor.go — последовательное топологическое вычисление (эталон)
//   - parallel.go — параллельный вариант с теми же наблюдаемыми результатами
//
// Последовательный Execute — обязательное эталонное поведение:
// детерминированный порядок, никакого разделяемого изменяемого
// состояния кроме memo-карты на один вызов. ExecuteParallel обязан
// давать идентичные результаты и проверяется на это тестами.
package executor
