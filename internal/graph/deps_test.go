package graph

import (
	"testing"
)

func TestDependencies_StructuralWalk(t *testing.T) {
	g := Graph{
		"x": Literal{Value: 1},
		"y": Literal{Value: 2},
		"z": Apply{Fn: "add", Args: []Task{
			Ref{Key: "x"},
			Apply{Fn: "mul", Args: []Task{Ref{Key: "y"}, Literal{Value: 10}}},
		}},
	}

	deps := Dependencies(g)

	if deps["x"].Len() != 0 {
		t.Errorf("literal x should have no deps, got %v", deps["x"].Sorted())
	}
	if deps["y"].Len() != 0 {
		t.Errorf("literal y should have no deps, got %v", deps["y"].Sorted())
	}

	// Вложенный Ref внутри Apply тоже собирается.
	zDeps := deps["z"]
	if zDeps.Len() != 2 || !zDeps.Has("x") || !zDeps.Has("y") {
		t.Errorf("z should depend on x and y, got %v", zDeps.Sorted())
	}
}

func TestDependencies_DuplicateRefsCollapse(t *testing.T) {
	// Два вхождения одного Ref дают одну зависимость (множество).
	g := Graph{
		"x": Literal{Value: 1},
		"y": Apply{Fn: "add", Args: []Task{Ref{Key: "x"}, Ref{Key: "x"}}},
	}

	deps := Dependencies(g)
	if deps["y"].Len() != 1 {
		t.Errorf("expected 1 distinct dependency, got %d", deps["y"].Len())
	}
}

func TestDependents_Inverse(t *testing.T) {
	g := Graph{
		"a": Literal{Value: 1},
		"b": Apply{Fn: "f", Args: []Task{Ref{Key: "a"}}},
		"c": Apply{Fn: "g", Args: []Task{Ref{Key: "a"}}},
		"d": Apply{Fn: "h", Args: []Task{Ref{Key: "b"}, Ref{Key: "c"}}},
	}

	dependents := Dependents(Dependencies(g))

	aDeps := dependents["a"]
	if aDeps.Len() != 2 || !aDeps.Has("b") || !aDeps.Has("c") {
		t.Errorf("a should have dependents b and c, got %v", aDeps.Sorted())
	}

	// Лист без зависимых получает пустое множество, не nil.
	if dependents["d"] == nil {
		t.Error("d should have an empty dependents set, got nil")
	}
	if dependents["d"].Len() != 0 {
		t.Errorf("d should have no dependents, got %v", dependents["d"].Sorted())
	}
}

func TestSubstitute_NestedReplacement(t *testing.T) {
	body := Apply{Fn: "add", Args: []Task{
		Ref{Key: "x"},
		Apply{Fn: "mul", Args: []Task{Ref{Key: "x"}, Literal{Value: 2}}},
	}}

	result := Substitute(body, "x", Literal{Value: 5})

	apply, ok := result.(Apply)
	if !ok {
		t.Fatalf("expected Apply, got %T", result)
	}
	if lit, ok := apply.Args[0].(Literal); !ok || lit.Value != 5 {
		t.Errorf("top-level ref not replaced: %v", apply.Args[0])
	}
	nested, ok := apply.Args[1].(Apply)
	if !ok {
		t.Fatalf("expected nested Apply, got %T", apply.Args[1])
	}
	if lit, ok := nested.Args[0].(Literal); !ok || lit.Value != 5 {
		t.Errorf("nested ref not replaced: %v", nested.Args[0])
	}
}

func TestSubstitute_DoesNotMutateOriginal(t *testing.T) {
	body := Apply{Fn: "f", Args: []Task{Ref{Key: "x"}}}

	_ = Substitute(body, "x", Literal{Value: 1})

	if _, ok := body.Args[0].(Ref); !ok {
		t.Error("original task was mutated by Substitute")
	}
}
