package executor

import (
	"fmt"
	"sort"
	"sync"
)

// Func — функция задачи.
//
// Получает уже вычисленные аргументы в порядке объявления в Apply.
// Функции предполагаются детерминированными: проход объединения
// общих подвыражений опирается на это, сводя структурно идентичные
// вызовы к одному.
type Func func(args ...any) (any, error)

// Registry — реестр функций по имени.
//
// Позволяет регистрировать и получать реализации Func по имени
// из Apply. Потокобезопасен.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]Func
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[string]Func),
	}
}

// Register регистрирует функцию в реестре.
// Если функция с таким именем уже существует, она будет перезаписана.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[name] = fn
}

// Get возвращает функцию по имени.
// Возвращает ErrFunctionNotFound, если функция не найдена.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, exists := r.fns[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	return fn, nil
}

// Has проверяет, зарегистрирована ли функция.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.fns[name]
	return exists
}

// Names возвращает список всех зарегистрированных имён функций.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fns))
	for n := range r.fns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count возвращает количество зарегистрированных функций.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fns)
}

// Unregister удаляет функцию из реестра.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.fns, name)
}
