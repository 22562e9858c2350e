package executor

import (
	"fmt"
	"strings"
)

// DefaultRegistry создаёт реестр со стандартным набором функций.
//
// Набор намеренно небольшой: арифметика, строки и агрегаты,
// достаточные для CLI и тестов. Прикладной код регистрирует
// собственные функции поверх.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("identity", builtinIdentity)
	r.Register("add", builtinAdd)
	r.Register("sub", builtinSub)
	r.Register("mul", builtinMul)
	r.Register("sum", builtinSum)
	r.Register("count", builtinCount)
	r.Register("concat", builtinConcat)
	r.Register("split", builtinSplit)
	r.Register("join", builtinJoin)
	r.Register("upper", builtinUpper)
	r.Register("lower", builtinLower)
	r.Register("format", builtinFormat)

	return r
}

// toFloat приводит значение к float64.
//
// JSON-числа приходят как float64, но программно построенные графы
// могут содержать int.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrBadArgument, v)
	}
}

// toString приводит значение к строке.
func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrBadArgument, v)
	}
	return s, nil
}

func builtinIdentity(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: identity expects 1, got %d", ErrArgumentCount, len(args))
	}
	return args[0], nil
}

func builtinAdd(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: add expects 2, got %d", ErrArgumentCount, len(args))
	}
	a, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

func builtinSub(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: sub expects 2, got %d", ErrArgumentCount, len(args))
	}
	a, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	return a - b, nil
}

func builtinMul(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: mul expects 2, got %d", ErrArgumentCount, len(args))
	}
	a, err := toFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	return a * b, nil
}

// builtinSum суммирует все аргументы; аргумент-слайс разворачивается.
func builtinSum(args ...any) (any, error) {
	total := 0.0
	for _, arg := range args {
		if list, ok := arg.([]any); ok {
			for _, item := range list {
				n, err := toFloat(item)
				if err != nil {
					return nil, err
				}
				total += n
			}
			continue
		}
		n, err := toFloat(arg)
		if err != nil {
			return nil, err
		}
		total += n
	}
	return total, nil
}

// builtinCount возвращает длину строки, слайса или map.
func builtinCount(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: count expects 1, got %d", ErrArgumentCount, len(args))
	}
	switch v := args[0].(type) {
	case string:
		return float64(len(v)), nil
	case []any:
		return float64(len(v)), nil
	case []string:
		return float64(len(v)), nil
	case map[string]any:
		return float64(len(v)), nil
	default:
		return nil, fmt.Errorf("%w: count expects string, slice or map, got %T", ErrBadArgument, args[0])
	}
}

func builtinConcat(args ...any) (any, error) {
	var sb strings.Builder
	for _, arg := range args {
		s, err := toString(arg)
		if err != nil {
			return nil, err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func builtinSplit(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: split expects 2, got %d", ErrArgumentCount, len(args))
	}
	s, err := toString(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := toString(args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func builtinJoin(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: join expects 2, got %d", ErrArgumentCount, len(args))
	}
	list, ok := args[0].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: join expects a slice, got %T", ErrBadArgument, args[0])
	}
	sep, err := toString(args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(list))
	for i, item := range list {
		s, err := toString(item)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}

func builtinUpper(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: upper expects 1, got %d", ErrArgumentCount, len(args))
	}
	s, err := toString(args[0])
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(s), nil
}

func builtinLower(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: lower expects 1, got %d", ErrArgumentCount, len(args))
	}
	s, err := toString(args[0])
	if err != nil {
		return nil, err
	}
	return strings.ToLower(s), nil
}

// builtinFormat форматирует строку через fmt.Sprintf.
func builtinFormat(args ...any) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: format expects at least 1, got %d", ErrArgumentCount, len(args))
	}
	layout, err := toString(args[0])
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf(layout, args[1:]...), nil
}
