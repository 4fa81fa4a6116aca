// Released under an MIT license. See LICENSE.

package form

import (
	"strings"
	"testing"

	"github.com/michaelmacinnis/kith/internal/common/fault"
	"github.com/michaelmacinnis/kith/internal/common/struct/beta"
	"github.com/michaelmacinnis/kith/internal/common/type/ast"
	"github.com/michaelmacinnis/kith/internal/engine/walk"
)

func faults(t *testing.T, what string, fn func()) *fault.T {
	t.Helper()

	var f *fault.T

	func() {
		defer func() {
			f, _ = fault.From(recover())
		}()

		fn()
	}()

	if f == nil {
		t.Fatalf("expected a fault: %s", what)
	}

	return f
}

func TestExportsNamePositions(t *testing.T) {
	f := New("bind", []string{"name", "sub"}, WithExports(beta.Use("name", "sub")))
	if f.Exports().String() == "" {
		t.Fatal("exports were dropped")
	}

	got := faults(t, "exporting a missing position", func() {
		New("bind", []string{"name"}, WithExports(beta.Use("other")))
	})

	if got.Form != "bind" || !strings.Contains(got.Error(), "does not bind") {
		t.Fatalf("fault is %v", got)
	}

	faults(t, "repeated export of a missing position", func() {
		New("many", []string{"name"}, WithExports(beta.UseAll(beta.Use("component"))))
	})
}

func TestMissingHalves(t *testing.T) {
	p := Negative(walk.NotWalked[ast.T]())

	if p.IsPos() || !p.IsNeg() {
		t.Fatal("a negative pair has only a negative half")
	}

	faults(t, "positive half of a negative pair", func() {
		p.Pos()
	})
}
