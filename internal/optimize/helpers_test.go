package optimize

import (
	"context"
	"reflect"
	"testing"

	"github.com/shaiso/Optimata/internal/executor"
	"github.com/shaiso/Optimata/internal/graph"
)

// wordsGraph — граф из сценария "подсчёт слов": общая пара
// words -> nwords и три независимые ветки
// (val_i, nwords) -> count_i -> format_i -> print_i.
func wordsGraph() graph.Graph {
	g := graph.Graph{
		"words":  graph.Literal{Value: "the quick brown fox"},
		"nwords": graph.Apply{Fn: "count", Args: []graph.Task{graph.Ref{Key: "words"}}},
	}

	branches := []struct {
		val    graph.Key
		count  graph.Key
		format graph.Key
		print  graph.Key
		n      float64
	}{
		{"val1", "count1", "format1", "print1", 1},
		{"val2", "count2", "format2", "print2", 2},
		{"val3", "count3", "format3", "print3", 3},
	}

	for _, b := range branches {
		g[b.val] = graph.Literal{Value: b.n}
		g[b.count] = graph.Apply{Fn: "add", Args: []graph.Task{
			graph.Ref{Key: b.val}, graph.Ref{Key: "nwords"},
		}}
		g[b.format] = graph.Apply{Fn: "mul", Args: []graph.Task{
			graph.Ref{Key: b.count}, graph.Literal{Value: 2.0},
		}}
		g[b.print] = graph.Apply{Fn: "format", Args: []graph.Task{
			graph.Literal{Value: "result=%v"}, graph.Ref{Key: b.format},
		}}
	}

	return g
}

// mustExecute вычисляет ключи стандартным реестром или валит тест.
func mustExecute(t *testing.T, g graph.Graph, keys []graph.Key) []any {
	t.Helper()

	values, err := executor.Execute(context.Background(), g, keys, executor.DefaultRegistry())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	return values
}

// assertSameResults проверяет, что два графа дают одинаковые значения
// для одних и тех же выходных ключей.
func assertSameResults(t *testing.T, before, after graph.Graph, keys []graph.Key) {
	t.Helper()

	want := mustExecute(t, before, keys)
	got := mustExecute(t, after, keys)
	if !reflect.DeepEqual(want, got) {
		t.Errorf("results changed after rewrite: want %v, got %v", want, got)
	}
}
