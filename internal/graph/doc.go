// Package graph содержит модель графа задач.
//
// Включает:
//   - task.go     — Key, Task (Literal/Ref/Apply), Graph, подстановка
//   - deps.go     — прямые зависимости и их инверсия
//   - validate.go — поиск висячих ссылок и циклов (DFS с раскраской)
//   - parser.go   — разбор компактной формы из JSON
//
// Граф неизменяем после построения: оптимизационные проходы из пакета
// optimize всегда возвращают новый экземпляр.
package graph
