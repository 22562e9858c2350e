package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shaiso/Optimata/internal/graph"
)

// loadGraph читает и разбирает файл графа в компактной JSON-форме.
func loadGraph(path string) (graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}

	g, err := graph.Parse(data)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// keyOf переводит строку аргумента CLI в graph.Key.
func keyOf(s string) graph.Key {
	return graph.Key(s)
}

// keysOf переводит срез строк в срез ключей.
func keysOf(ss []string) []graph.Key {
	out := make([]graph.Key, len(ss))
	for i, s := range ss {
		out[i] = graph.Key(s)
	}
	return out
}

// formatTask отображает тело задачи в читаемую строку.
//
//	Literal 5        →  5
//	Ref "x"          →  <x>
//	Apply add(x, 1)  →  add(<x>, 1)
func formatTask(t graph.Task) string {
	switch task := t.(type) {
	case graph.Literal:
		if s, ok := task.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", task.Value)
	case graph.Ref:
		return "<" + string(task.Key) + ">"
	case graph.Apply:
		args := make([]string, len(task.Args))
		for i, a := range task.Args {
			args[i] = formatTask(a)
		}
		return task.Fn + "(" + strings.Join(args, ", ") + ")"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// graphRows строит отсортированные строки таблицы "ключ / задача / зависимости".
func graphRows(g graph.Graph) [][]string {
	deps := graph.Dependencies(g)

	rows := make([][]string, 0, len(g))
	for _, k := range g.Keys() {
		depNames := make([]string, 0, deps[k].Len())
		for _, d := range deps[k].Sorted() {
			depNames = append(depNames, string(d))
		}
		sort.Strings(depNames)
		rows = append(rows, []string{
			string(k),
			formatTask(g[k]),
			strings.Join(depNames, ","),
		})
	}
	return rows
}

// graphJSON строит JSON-представление графа для режима --json.
func graphJSON(g graph.Graph) map[string]string {
	out := make(map[string]string, len(g))
	for _, k := range g.Keys() {
		out[string(k)] = formatTask(g[k])
	}
	return out
}
