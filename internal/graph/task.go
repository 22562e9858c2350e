package graph

// Key — уникальный идентификатор результата задачи внутри графа.
//
// Key непрозрачен для вызывающего кода: движок сравнивает ключи
// только на равенство, а для детерминированных обходов использует
// лексикографический порядок строк.
type Key string

// Task — описание способа вычисления значения для ключа.
//
// Это закрытый tagged union с тремя вариантами:
//   - Literal — готовое значение, не требующее вычисления
//   - Ref     — ссылка на результат другой задачи
//   - Apply   — вызов функции с аргументами (аргументы могут вкладываться)
//
// Никакие другие реализации вне пакета невозможны.
type Task interface {
	isTask()
}

// Literal — немедленное значение.
type Literal struct {
	// Value — само значение. Движок его не интерпретирует.
	Value any
}

// Ref — ссылка на результат задачи с ключом Key.
type Ref struct {
	// Key — ключ задачи, чей результат подставляется.
	Key Key
}

// Apply — вызов функции из реестра.
type Apply struct {
	// Fn — имя функции в реестре executor'а.
	Fn string

	// Args — упорядоченные аргументы. Каждый аргумент — сам Task,
	// то есть допустимы вложенные Apply произвольной глубины.
	Args []Task
}

func (Literal) isTask() {}
func (Ref) isTask()     {}
func (Apply) isTask()   {}

// Graph — отображение ключа в описание его задачи.
//
// Graph неизменяем после построения: каждый rewrite-проход возвращает
// новый экземпляр, никогда не модифицируя граф, на который ещё может
// ссылаться вызывающий код.
type Graph map[Key]Task

// Clone возвращает поверхностную копию графа.
//
// Узлы Task копировать не нужно — проходы никогда не мутируют их,
// только заменяют целиком.
func (g Graph) Clone() Graph {
	out := make(Graph, len(g))
	for k, t := range g {
		out[k] = t
	}
	return out
}

// Has проверяет наличие ключа в графе.
func (g Graph) Has(k Key) bool {
	_, ok := g[k]
	return ok
}

// Keys возвращает ключи графа в отсортированном порядке.
//
// Используется везде, где нужен детерминированный обход map.
func (g Graph) Keys() []Key {
	return sortedKeys(g)
}

// CopyTask возвращает глубокую копию узла задачи.
//
// Нужна проходам подстановки: исходные узлы никогда не мутируются,
// вместо этого строится новое тело задачи.
func CopyTask(t Task) Task {
	switch task := t.(type) {
	case Literal:
		return Literal{Value: task.Value}
	case Ref:
		return Ref{Key: task.Key}
	case Apply:
		args := make([]Task, len(task.Args))
		for i, a := range task.Args {
			args[i] = CopyTask(a)
		}
		return Apply{Fn: task.Fn, Args: args}
	default:
		return t
	}
}

// Substitute возвращает копию задачи t, в которой каждое вхождение
// Ref(k) заменено на копию replacement.
//
// Замена рекурсивно спускается в аргументы Apply на любую глубину.
// Если вхождений нет, возвращается эквивалентная копия без изменений.
func Substitute(t Task, k Key, replacement Task) Task {
	switch task := t.(type) {
	case Literal:
		return task
	case Ref:
		if task.Key == k {
			return CopyTask(replacement)
		}
		return task
	case Apply:
		args := make([]Task, len(task.Args))
		for i, a := range task.Args {
			args[i] = Substitute(a, k, replacement)
		}
		return Apply{Fn: task.Fn, Args: args}
	default:
		return t
	}
}

// refsOf собирает в acc все ключи, на которые ссылается задача.
func refsOf(t Task, acc KeySet) {
	switch task := t.(type) {
	case Ref:
		acc.Add(task.Key)
	case Apply:
		for _, a := range task.Args {
			refsOf(a, acc)
		}
	}
}

// Refs возвращает множество ключей, на которые задача ссылается
// напрямую (включая вложенные в Apply аргументы).
func Refs(t Task) KeySet {
	acc := make(KeySet)
	refsOf(t, acc)
	return acc
}
