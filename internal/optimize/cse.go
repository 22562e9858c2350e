package optimize

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/shaiso/Optimata/internal/graph"
)

// CommonSubexpressions объединяет структурно идентичные задачи.
//
// Каждое Apply-тело приводится к каноническому байтовому виду и
// хэшируется; при совпадении хэшей более поздняя задача переписывается
// в Ref на первую встреченную. Повторное вычисление исчезает: executor
// вызовет общий конструктор ровно один раз.
//
// Обход идёт в стабильном отсортированном порядке ключей, поэтому
// результат не зависит от порядка вставки в map; при совпадении
// выигрывает лексикографически меньший ключ.
//
// Это необязательный проход, не входящий в четыре основных.
func CommonSubexpressions(g graph.Graph) graph.Graph {
	firstSeen := make(map[string]graph.Key, len(g))
	rewrite := make(map[graph.Key]graph.Key)

	for _, k := range g.Keys() {
		apply, ok := g[k].(graph.Apply)
		if !ok {
			continue
		}

		h := canonicalHash(apply)
		if orig, seen := firstSeen[h]; seen {
			rewrite[k] = orig
			continue
		}
		firstSeen[h] = k
	}

	if len(rewrite) == 0 {
		return g
	}

	out := make(graph.Graph, len(g))
	for k, t := range g {
		if orig, ok := rewrite[k]; ok {
			out[k] = graph.Ref{Key: orig}
			continue
		}
		out[k] = t
	}

	return out
}

// canonicalHash возвращает hex-хэш канонической формы задачи.
//
// Каждое поле пишется с длиной-префиксом, чтобы исключить
// неоднозначность склейки; вложенные аргументы сериализуются
// рекурсивно с тегом варианта.
func canonicalHash(t graph.Task) string {
	h := sha256.New()

	var write func(t graph.Task)
	writeField := func(tag byte, data []byte) {
		var lenBuf [8]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
		h.Write([]byte{tag})
		h.Write(lenBuf[:])
		h.Write(data)
	}

	write = func(t graph.Task) {
		switch task := t.(type) {
		case graph.Literal:
			// %#v даёт и тип, и значение: 1 и "1" не совпадут.
			writeField('L', []byte(fmt.Sprintf("%#v", task.Value)))
		case graph.Ref:
			writeField('R', []byte(task.Key))
		case graph.Apply:
			writeField('A', []byte(task.Fn))
			var lenBuf [8]byte
			binary.BigEndian.PutUint64(lenBuf[:], uint64(len(task.Args)))
			h.Write(lenBuf[:])
			for _, a := range task.Args {
				write(a)
			}
		}
	}
	write(t)

	return fmt.Sprintf("%x", h.Sum(nil))
}
