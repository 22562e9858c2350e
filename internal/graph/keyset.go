package graph

import "sort"

// KeySet — множество ключей.
type KeySet map[Key]struct{}

// NewKeySet создаёт множество из перечисленных ключей.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add добавляет ключ в множество.
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}

// Has проверяет принадлежность ключа множеству.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Len возвращает размер множества.
func (s KeySet) Len() int {
	return len(s)
}

// Sorted возвращает элементы множества в отсортированном порядке.
func (s KeySet) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone возвращает копию множества.
func (s KeySet) Clone() KeySet {
	out := make(KeySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// sortedKeys возвращает ключи графа в отсортированном порядке.
func sortedKeys(g Graph) []Key {
	out := make([]Key, 0, len(g))
	for k := range g {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
