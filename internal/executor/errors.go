package executor

import (
	"errors"

	"github.com/shaiso/Optimata/internal/graph"
)

// Ошибки executor'а.
var (
	// ErrFunctionNotFound — имя функции не найдено в реестре.
	ErrFunctionNotFound = errors.New("function not found in registry")

	// ErrNilRegistry — executor вызван без реестра функций.
	ErrNilRegistry = errors.New("registry is nil")

	// ErrNoKeys — не запрошен ни один выходной ключ.
	ErrNoKeys = errors.New("no output keys requested")

	// ErrBadArgument — аргумент функции имеет неожиданный тип.
	ErrBadArgument = errors.New("bad argument")

	// ErrArgumentCount — функции передано неверное число аргументов.
	ErrArgumentCount = errors.New("wrong number of arguments")
)

// TaskError — ошибка выполнения задачи.
//
// Оборачивает исходную ошибку функции с указанием ключа задачи,
// на которой прервалось выполнение. Частичная карта результатов
// вызывающему коду не возвращается.
type TaskError struct {
	Key graph.Key // ключ задачи, на которой произошёл сбой
	Err error     // исходная ошибка
}

// Error реализует интерфейс error.
func (e *TaskError) Error() string {
	return "task " + string(e.Key) + ": " + e.Err.Error()
}

// Unwrap возвращает исходную ошибку.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskError создаёт TaskError для ключа.
func NewTaskError(key graph.Key, err error) *TaskError {
	return &TaskError{Key: key, Err: err}
}
