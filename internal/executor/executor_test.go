package executor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shaiso/Optimata/internal/graph"
)

func testGraph() graph.Graph {
	return graph.Graph{
		"x": graph.Literal{Value: 1.0},
		"y": graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "x"}, graph.Literal{Value: 2.0}}},
		"z": graph.Apply{Fn: "mul", Args: []graph.Task{
			graph.Ref{Key: "y"},
			graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "x"}, graph.Literal{Value: 1.0}}},
		}},
	}
}

func TestExecute_Basic(t *testing.T) {
	values, err := Execute(context.Background(), testGraph(), []graph.Key{"z"}, DefaultRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// z = (1+2) * (1+1) = 6
	if len(values) != 1 || values[0] != 6.0 {
		t.Errorf("expected [6], got %v", values)
	}
}

func TestExecute_OrderMatchesKeys(t *testing.T) {
	g := testGraph()

	values, err := Execute(context.Background(), g, []graph.Key{"z", "x", "y"}, DefaultRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []any{6.0, 1.0, 3.0}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("expected %v, got %v", want, values)
	}
}

func TestExecute_RefTask(t *testing.T) {
	g := graph.Graph{
		"a": graph.Literal{Value: "hello"},
		"b": graph.Ref{Key: "a"},
	}

	values, err := Execute(context.Background(), g, []graph.Key{"b"}, DefaultRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[0] != "hello" {
		t.Errorf("expected hello, got %v", values[0])
	}
}

func TestExecute_EachTaskOnce(t *testing.T) {
	// Общая зависимость в ромбе вычисляется ровно один раз.
	g := graph.Graph{
		"shared": graph.Apply{Fn: "probe", Args: []graph.Task{graph.Literal{Value: 1.0}}},
		"left":   graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "shared"}, graph.Literal{Value: 1.0}}},
		"right":  graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "shared"}, graph.Literal{Value: 2.0}}},
		"top":    graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "left"}, graph.Ref{Key: "right"}}},
	}

	calls := 0
	reg := DefaultRegistry()
	reg.Register("probe", func(args ...any) (any, error) {
		calls++
		return args[0], nil
	})

	if _, err := Execute(context.Background(), g, []graph.Key{"top"}, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("shared task should run exactly once, ran %d times", calls)
	}
}

func TestExecute_RestrictedToClosure(t *testing.T) {
	// Задачи вне замыкания запрошенных ключей не выполняются.
	g := graph.Graph{
		"wanted":   graph.Literal{Value: 1.0},
		"unwanted": graph.Apply{Fn: "boom", Args: []graph.Task{graph.Literal{Value: 0.0}}},
	}

	reg := DefaultRegistry()
	reg.Register("boom", func(args ...any) (any, error) {
		t.Error("task outside the closure was evaluated")
		return nil, nil
	})

	if _, err := Execute(context.Background(), g, []graph.Key{"wanted"}, reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecute_TaskFailure(t *testing.T) {
	g := graph.Graph{
		"ok":   graph.Literal{Value: 1.0},
		"bad":  graph.Apply{Fn: "fail", Args: []graph.Task{graph.Ref{Key: "ok"}}},
		"next": graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "bad"}, graph.Literal{Value: 1.0}}},
	}

	boom := errors.New("boom")
	reg := DefaultRegistry()
	reg.Register("fail", func(args ...any) (any, error) {
		return nil, boom
	})

	values, err := Execute(context.Background(), g, []graph.Key{"next"}, reg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Частичные результаты не возвращаются.
	if values != nil {
		t.Errorf("expected nil values on failure, got %v", values)
	}

	var tErr *TaskError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TaskError, got %T", err)
	}
	if tErr.Key != "bad" {
		t.Errorf("expected failing key bad, got %s", tErr.Key)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom error, got %v", err)
	}
}

func TestExecute_UnknownFunction(t *testing.T) {
	g := graph.Graph{
		"a": graph.Apply{Fn: "no_such_fn", Args: []graph.Task{graph.Literal{Value: 1.0}}},
	}

	_, err := Execute(context.Background(), g, []graph.Key{"a"}, DefaultRegistry())
	if !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("expected ErrFunctionNotFound, got %v", err)
	}

	var tErr *TaskError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TaskError, got %T", err)
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	g := testGraph()

	t.Run("nil registry", func(t *testing.T) {
		_, err := Execute(context.Background(), g, []graph.Key{"z"}, nil)
		if !errors.Is(err, ErrNilRegistry) {
			t.Errorf("expected ErrNilRegistry, got %v", err)
		}
	})

	t.Run("no keys", func(t *testing.T) {
		_, err := Execute(context.Background(), g, nil, DefaultRegistry())
		if !errors.Is(err, ErrNoKeys) {
			t.Errorf("expected ErrNoKeys, got %v", err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := Execute(context.Background(), g, []graph.Key{"ghost"}, DefaultRegistry())
		if !errors.Is(err, graph.ErrMissingOutput) {
			t.Errorf("expected ErrMissingOutput, got %v", err)
		}
	})

	t.Run("cyclic graph", func(t *testing.T) {
		bad := graph.Graph{
			"a": graph.Apply{Fn: "f", Args: []graph.Task{graph.Ref{Key: "b"}}},
			"b": graph.Apply{Fn: "g", Args: []graph.Task{graph.Ref{Key: "a"}}},
		}
		_, err := Execute(context.Background(), bad, []graph.Key{"a"}, DefaultRegistry())
		if !errors.Is(err, graph.ErrCycle) {
			t.Errorf("expected ErrCycle, got %v", err)
		}
	})
}

func TestExecute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, testGraph(), []graph.Key{"z"}, DefaultRegistry())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTopoOrder_Deterministic(t *testing.T) {
	g := testGraph()

	first := topoOrder(g, []graph.Key{"z"})
	for i := 0; i < 10; i++ {
		if got := topoOrder(g, []graph.Key{"z"}); !reflect.DeepEqual(first, got) {
			t.Fatalf("topological order is not deterministic: %v != %v", first, got)
		}
	}

	// Зависимости всегда раньше зависимых.
	pos := make(map[graph.Key]int, len(first))
	for i, k := range first {
		pos[k] = i
	}
	for _, k := range first {
		for ref := range graph.Refs(g[k]) {
			if pos[ref] > pos[k] {
				t.Errorf("dependency %s scheduled after %s", ref, k)
			}
		}
	}
}
