// Released under an MIT license. See LICENSE.

package mbe

import (
	"errors"
	"reflect"
	"testing"

	"github.com/michaelmacinnis/kith/internal/common/fault"
)

func expectFault(t *testing.T, what string) {
	t.Helper()

	r := recover()
	if r == nil {
		t.Fatalf("expected fault: %s", what)
	}

	if _, ok := fault.From(r); !ok {
		t.Fatalf("expected fault, got %v", r)
	}
}

func params(ns ...string) []*T[string] {
	envs := make([]*T[string], len(ns))
	for i, n := range ns {
		envs[i] = Leaf("param", n).Set("p_t", "T"+n)
	}

	return envs
}

func TestMarchPairsRepetitions(t *testing.T) {
	m := Leaf("body", "b").Merge(FromAnonRepeat(params("x", "y")))

	envs := m.March("param")
	if len(envs) != 2 {
		t.Fatalf("marched %d times, expected 2", len(envs))
	}

	for i, n := range []string{"x", "y"} {
		if v, _ := envs[i].Get("param"); v != n {
			t.Fatalf("repetition %d param = %s", i, v)
		}

		if v, _ := envs[i].Get("p_t"); v != "T"+n {
			t.Fatalf("repetition %d p_t = %s", i, v)
		}

		if v, _ := envs[i].Get("body"); v != "b" {
			t.Fatalf("repetition %d lost the shared leaf", i)
		}
	}
}

func TestMarchUnequalFaults(t *testing.T) {
	m := FromAnonRepeat(params("x", "y")).
		Merge(FromAnonRepeat([]*T[string]{Leaf("arm", "a")}))

	defer expectFault(t, "unequal march")

	m.March("param", "arm")
}

func TestEmptyRepeatKnowsItsNames(t *testing.T) {
	m := FromAnonRepeat[string](nil, "param", "p_t")

	if !m.Has("p_t") {
		t.Fatal("an empty repetition should still declare p_t")
	}

	if envs := m.March("param"); len(envs) != 0 {
		t.Fatalf("marched %d times over nothing", len(envs))
	}
}

func TestNamedRepeat(t *testing.T) {
	m := Leaf("x", "1").Merge(FromNamedRepeat("args", params("a", "b", "c")))

	if got := len(m.Named("args")); got != 3 {
		t.Fatalf("args has %d repetitions", got)
	}

	if m.Count("param") != 3 {
		t.Fatalf("count = %d", m.Count("param"))
	}

	defer expectFault(t, "missing name")

	m.Named("nope")
}

func TestMergeKeepsBothSides(t *testing.T) {
	l := Leaf("a", "1").Merge(FromAnonRepeat(params("x")))
	r := Leaf("b", "2").Merge(FromNamedRepeat("n", []*T[string]{Leaf("c", "3")}))

	m := l.Merge(r)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "param", "p_t", "c"}) {
		t.Fatalf("keys = %v", got)
	}

	if got := m.Named("n"); len(got) != 1 {
		t.Fatalf("named group lost in merge")
	}

	if m.Count("c") != 1 || m.Count("param") != 1 {
		t.Fatal("groups renumbered incorrectly")
	}
}

func TestZipAndMap(t *testing.T) {
	m := Leaf("a", "1").Merge(FromAnonRepeat(params("x", "y")))

	double := Map(m, func(s string) string { return s + s })

	var pairs []string

	err := Zip(m, double, func(k, x, y string) error {
		pairs = append(pairs, k+":"+x+"/"+y)

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a:1/11", "param:x/xx", "p_t:Tx/TxTx", "param:y/yy", "p_t:Ty/TyTy"}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("pairs = %v", pairs)
	}

	short := Leaf("a", "1").Merge(FromAnonRepeat(params("x")))
	if err := Zip(m, short, func(_, _, _ string) error { return nil }); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}

	stop := errors.New("stop")

	_, err = MapErr(m, func(k, v string) (string, error) {
		if v == "y" {
			return "", stop
		}

		return v, nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop, got %v", err)
	}

	if !Equal(m, Map(m, func(s string) string { return s }), func(x, y string) bool { return x == y }) {
		t.Fatal("identity map should be equal")
	}
}
