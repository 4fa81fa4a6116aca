// Released under an MIT license. See LICENSE.

package beta

import (
	"reflect"
	"testing"
)

func TestSeq(t *testing.T) {
	if _, ok := Seq().(Nothing); !ok {
		t.Fatal("empty Seq should bind nothing")
	}

	b := Basic{Name: "x", Type: "t"}
	if !Equal(Seq(b), b) {
		t.Fatal("Seq of one spec should be that spec")
	}

	p := Protected{Name: "y"}

	s := Seq(b, p)
	if !Equal(s, Shadow{Inner: p, Outer: b}) {
		t.Fatalf("Seq(b, p) = %s", s)
	}

	if got := s.Binders(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("binders = %v", got)
	}

	if got := s.Keys(); !reflect.DeepEqual(got, []string{"x", "t", "y"}) {
		t.Fatalf("keys = %v", got)
	}
}

func TestAll(t *testing.T) {
	a := All(Basic{Name: "param", Type: "p_t"})

	sa, ok := a.(ShadowAll)
	if !ok {
		t.Fatalf("All gave %T", a)
	}

	if !reflect.DeepEqual(sa.Drivers, []string{"param", "p_t"}) {
		t.Fatalf("drivers = %v", sa.Drivers)
	}

	if a.String() != "[* param : p_t over param p_t]" {
		t.Fatalf("string = %s", a)
	}

	if Equal(a, All(Basic{Name: "param", Type: "q_t"})) {
		t.Fatal("different type keys should not be equal")
	}
}

func TestExports(t *testing.T) {
	if _, ok := Use().(ExportNothing); !ok {
		t.Fatal("Use() should export nothing")
	}

	e := Use("a", "b")
	if !ExportEqual(e, ExportShadow{Inner: ExportUse{Name: "b"}, Outer: ExportUse{Name: "a"}}) {
		t.Fatalf("Use(a, b) = %s", e)
	}

	if got := UseAll(Use("component")).Keys(); !reflect.DeepEqual(got, []string{"component"}) {
		t.Fatalf("keys = %v", got)
	}

	if !Within(e, []string{"a", "b", "c"}) {
		t.Fatal("a and b are both positions")
	}

	if Within(UseAll(e), []string{"a"}) {
		t.Fatal("b is not a position")
	}

	if !Within(ExportNothing{}, nil) {
		t.Fatal("exporting nothing needs no positions")
	}
}
