package graph

import (
	"encoding/json"
	"fmt"
)

// Parse разбирает граф из JSON.
//
// Формат — объект "ключ → компактная форма задачи":
//
//	{
//	  "x": 5,
//	  "y": ["add", "x", 10],
//	  "z": ["mul", "y", ["add", "x", 1]]
//	}
//
// Правила компактной формы описаны в Resolve.
func Parse(data []byte) (Graph, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse graph json: %w", err)
	}
	return FromShorthand(raw)
}

// FromShorthand строит граф из компактной формы.
//
// Разрешение компактной формы выполняется один раз, на границе
// построения графа; rewrite-проходы работают уже только с Task.
func FromShorthand(raw map[string]any) (Graph, error) {
	// Сначала собираем все ключи: строка разрешается в Ref только
	// если она называет существующий ключ графа.
	known := make(KeySet, len(raw))
	for name := range raw {
		if name == "" {
			return nil, NewValidationError("", "key", "task has empty key", ErrEmptyKey)
		}
		known.Add(Key(name))
	}

	g := make(Graph, len(raw))
	for name, value := range raw {
		task, err := Resolve(value, known)
		if err != nil {
			return nil, NewValidationError(Key(name), "spec", err.Error(), err)
		}
		g[Key(name)] = task
	}

	return g, nil
}

// Resolve переводит одно значение компактной формы в Task.
//
// Правила:
//   - массив ["fn", arg1, ...] — Apply с рекурсивным разрешением аргументов
//   - строка, называющая существующий ключ графа — Ref
//   - любое другое значение — Literal
func Resolve(value any, known KeySet) (Task, error) {
	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return nil, ErrEmptyApply
		}
		fn, ok := v[0].(string)
		if !ok || fn == "" {
			return nil, fmt.Errorf("%w: first element must be a function name", ErrInvalidSpec)
		}
		args := make([]Task, 0, len(v)-1)
		for _, rawArg := range v[1:] {
			arg, err := Resolve(rawArg, known)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return Apply{Fn: fn, Args: args}, nil
	case string:
		if known.Has(Key(v)) {
			return Ref{Key: Key(v)}, nil
		}
		return Literal{Value: v}, nil
	default:
		return Literal{Value: v}, nil
	}
}
