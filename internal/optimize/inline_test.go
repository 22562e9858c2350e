package optimize

import (
	"testing"

	"github.com/shaiso/Optimata/internal/graph"
)

func TestInline_DefaultLiterals(t *testing.T) {
	g, deps, err := Cull(wordsGraph(), []graph.Key{"print1", "print2"})
	if err != nil {
		t.Fatalf("cull failed: %v", err)
	}
	outputs := []graph.Key{"print1", "print2"}

	inlined := Inline(g, nil, outputs, deps)

	// Литеральные задачи исчезают из графа...
	for _, k := range []graph.Key{"words", "val1", "val2"} {
		if inlined.Has(k) {
			t.Errorf("literal key %s should be inlined away", k)
		}
	}

	// ...а их значения встроены напрямую в потребителей.
	count1, ok := inlined["count1"].(graph.Apply)
	if !ok {
		t.Fatalf("count1 should be Apply, got %T", inlined["count1"])
	}
	if lit, ok := count1.Args[0].(graph.Literal); !ok || lit.Value != 1.0 {
		t.Errorf("count1 arg 0 should embed literal 1, got %v", count1.Args[0])
	}

	// Вычисляемый nwords литералом не является и остаётся.
	if !inlined.Has("nwords") {
		t.Error("computed key nwords must not be inlined")
	}

	assertSameResults(t, g, inlined, outputs)
}

func TestInline_NoLiteralKeyRemains(t *testing.T) {
	g := wordsGraph()
	outputs := []graph.Key{"print1", "print2", "print3"}

	inlined := Inline(g, nil, outputs, nil)

	for k, task := range inlined {
		if _, ok := task.(graph.Literal); ok {
			t.Errorf("literal task %s survived inlining", k)
		}
	}
}

func TestInline_OutputLiteralKept(t *testing.T) {
	g := graph.Graph{
		"x": graph.Literal{Value: 7.0},
		"y": graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "x"}, graph.Literal{Value: 1.0}}},
	}
	outputs := []graph.Key{"x", "y"}

	inlined := Inline(g, nil, outputs, nil)

	// x — выход: остаётся адресуемым, хотя его значение встроено в y.
	if !inlined.Has("x") {
		t.Fatal("output literal must stay in the graph")
	}
	y := inlined["y"].(graph.Apply)
	if lit, ok := y.Args[0].(graph.Literal); !ok || lit.Value != 7.0 {
		t.Errorf("y should embed x's value, got %v", y.Args[0])
	}

	assertSameResults(t, g, inlined, outputs)
}

func TestInline_ExplicitKeys(t *testing.T) {
	// Явный allow-list подставляет и нелитеральную задачу:
	// в потребителя встраивается всё её тело.
	g := graph.Graph{
		"x": graph.Literal{Value: 3.0},
		"y": graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "x"}, graph.Literal{Value: 1.0}}},
		"z": graph.Apply{Fn: "mul", Args: []graph.Task{graph.Ref{Key: "y"}, graph.Literal{Value: 2.0}}},
	}
	outputs := []graph.Key{"z"}

	inlined := Inline(g, []graph.Key{"y"}, outputs, nil)

	if inlined.Has("y") {
		t.Error("force-inlined key should be dropped")
	}
	z := inlined["z"].(graph.Apply)
	if nested, ok := z.Args[0].(graph.Apply); !ok || nested.Fn != "add" {
		t.Errorf("z should embed y's apply body, got %v", z.Args[0])
	}

	assertSameResults(t, g, inlined, outputs)
}

func TestInline_ChainedExplicitKeys(t *testing.T) {
	// Подставляемые ключи ссылаются друг на друга: тела разрешаются
	// между собой до встраивания в потребителя.
	g := graph.Graph{
		"a": graph.Literal{Value: 2.0},
		"b": graph.Apply{Fn: "add", Args: []graph.Task{graph.Ref{Key: "a"}, graph.Literal{Value: 1.0}}},
		"c": graph.Apply{Fn: "mul", Args: []graph.Task{graph.Ref{Key: "b"}, graph.Literal{Value: 10.0}}},
		"d": graph.Apply{Fn: "sub", Args: []graph.Task{graph.Ref{Key: "c"}, graph.Literal{Value: 5.0}}},
	}
	outputs := []graph.Key{"d"}

	inlined := Inline(g, []graph.Key{"b", "c"}, outputs, nil)

	if inlined.Has("b") || inlined.Has("c") {
		t.Error("force-inlined chain should be dropped")
	}

	// d содержит mul(add(<a>, 1), 10) целиком.
	d := inlined["d"].(graph.Apply)
	mul, ok := d.Args[0].(graph.Apply)
	if !ok || mul.Fn != "mul" {
		t.Fatalf("d should embed c's body, got %v", d.Args[0])
	}
	if add, ok := mul.Args[0].(graph.Apply); !ok || add.Fn != "add" {
		t.Errorf("embedded c should itself embed b, got %v", mul.Args[0])
	}

	assertSameResults(t, g, inlined, outputs)
}

func TestInline_NoCandidatesIsIdentity(t *testing.T) {
	g := graph.Graph{
		"a": graph.Apply{Fn: "count", Args: []graph.Task{graph.Literal{Value: "abc"}}},
	}

	inlined := Inline(g, nil, []graph.Key{"a"}, nil)
	if len(inlined) != 1 || !inlined.Has("a") {
		t.Error("inline with no candidates should be identity")
	}
}
