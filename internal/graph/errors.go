package graph

import "errors"

// Ошибки валидации графа.
var (
	// ErrEmptyGraph — граф не содержит задач.
	ErrEmptyGraph = errors.New("graph has no tasks")

	// ErrEmptyKey — задача имеет пустой ключ.
	ErrEmptyKey = errors.New("task has empty key")

	// ErrMissingKey — ссылка на отсутствующий в графе ключ.
	ErrMissingKey = errors.New("reference to unknown key")

	// ErrSelfReference — задача ссылается сама на себя.
	ErrSelfReference = errors.New("task references itself")

	// ErrCycle — обнаружен цикл в зависимостях.
	ErrCycle = errors.New("dependency cycle detected")

	// ErrMissingOutput — запрошенный выходной ключ отсутствует в графе.
	ErrMissingOutput = errors.New("requested output key not in graph")
)

// Ошибки разбора компактной формы.
var (
	// ErrInvalidSpec — значение не разбирается в Task.
	ErrInvalidSpec = errors.New("invalid task spec")

	// ErrEmptyApply — вызов функции без имени функции.
	ErrEmptyApply = errors.New("apply has no function name")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	Key     Key    // ключ задачи, на которой обнаружена ошибка
	Field   string // поле или аспект, вызвавший ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.Key != "" {
		return "key " + string(e.Key) + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(key Key, field, message string, err error) *ValidationError {
	return &ValidationError{
		Key:     key,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
