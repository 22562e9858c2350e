// Package optimize содержит переписывающие проходы над графом задач.
//
// Включает:
//   - cull.go             — отсечение задач, недостижимых из выходов
//   - inline.go           — подстановка литеральных констант
//   - inline_functions.go — подстановка дешёвых вызовов в единственного потребителя
//   - fuse.go             — слияние максимальных линейных цепочек
//   - cse.go              — объединение общих подвыражений (необязательный проход)
//   - pipeline.go         — сборка стадий в стандартный пайплайн
//   - run.go              — оптимизация и выполнение одним вызовом
//
// Все проходы семантически нейтральны: наблюдаемые результаты
// выполнения графа не меняются. Каждый проход возвращает новый граф,
// вход никогда не мутируется. Отсутствие кандидатов для переписывания
// не ошибка — проход молча возвращает эквивалентный граф.
//
// Кандидат, применение которого изменило бы наблюдаемый результат
// (например, слияние через ключ, запрошенный как выход), определяется
// предикатами отбора и пропускается, а не применяется с ошибкой.
package optimize
