// Released under an MIT license. See LICENSE.

package beta

import (
	"strings"
)

// Export is an export spec: the part of a node's bindings that can be seen
// outside of the node. Names not exported stay private to the node, which
// is what keeps macro-introduced temporaries from leaking.
type Export interface {
	Keys() []string
	String() string
}

// ExportNothing exports no names.
type ExportNothing struct{}

// ExportUse exports whatever the sub-tree under Name binds.
type ExportUse struct {
	Name string
}

// ExportShadow exports Outer and then Inner, Inner winning on conflict.
type ExportShadow struct {
	Inner Export
	Outer Export
}

// ExportShadowAll repeats Sub once per repetition of the Drivers' groups.
type ExportShadowAll struct {
	Sub     Export
	Drivers []string
}

// Use exports the sub-trees under each of keys, later ones shadowing.
func Use(keys ...string) Export {
	var e Export = ExportNothing{}

	for _, k := range keys {
		if _, ok := e.(ExportNothing); ok {
			e = ExportUse{Name: k}
		} else {
			e = ExportShadow{Inner: ExportUse{Name: k}, Outer: e}
		}
	}

	return e
}

// UseAll exports sub repeated over every key it mentions.
func UseAll(sub Export) Export {
	return ExportShadowAll{Sub: sub, Drivers: sub.Keys()}
}

func (ExportNothing) Keys() []string { return nil }
func (ExportNothing) String() string { return "[]" }

func (e ExportUse) Keys() []string { return []string{e.Name} }
func (e ExportUse) String() string { return e.Name }

func (e ExportShadow) Keys() []string { return union(e.Outer.Keys(), e.Inner.Keys()) }

func (e ExportShadow) String() string {
	return "(" + e.Outer.String() + " < " + e.Inner.String() + ")"
}

func (e ExportShadowAll) Keys() []string { return e.Sub.Keys() }

func (e ExportShadowAll) String() string {
	return "[* " + e.Sub.String() + " over " + strings.Join(e.Drivers, " ") + "]"
}

// Within returns true if every key exported by e is one of keys. A form
// exports only what its own positions bind: an atom in an exported position
// is a bound name, and a pattern there exports what it binds in turn.
func Within(e Export, keys []string) bool {
	have := map[string]bool{}
	for _, k := range keys {
		have[k] = true
	}

	for _, k := range e.Keys() {
		if !have[k] {
			return false
		}
	}

	return true
}

// ExportEqual returns true if a and b are the same export spec.
func ExportEqual(a, b Export) bool {
	switch a := a.(type) {
	case ExportShadow:
		o, ok := b.(ExportShadow)

		return ok && ExportEqual(a.Inner, o.Inner) && ExportEqual(a.Outer, o.Outer)
	case ExportShadowAll:
		o, ok := b.(ExportShadowAll)

		return ok && ExportEqual(a.Sub, o.Sub) && same(a.Drivers, o.Drivers)
	}

	return a == b
}
