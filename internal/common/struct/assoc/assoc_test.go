// Released under an MIT license. See LICENSE.

package assoc

import (
	"reflect"
	"strconv"
	"testing"
)

func TestSetLeavesOlderHandlesAlone(t *testing.T) {
	a := Single("x", 1)
	b := a.Set("x", 2)
	c := b.Set("y", 3)

	if v, _ := a.Find("x"); v != 1 {
		t.Fatalf("a[x] = %d, expected 1", v)
	}

	if v, _ := b.Find("x"); v != 2 {
		t.Fatalf("b[x] = %d, expected 2", v)
	}

	if b.Has("y") {
		t.Fatal("b should not have y")
	}

	if c.Len() != 2 {
		t.Fatalf("c has %d names, expected 2", c.Len())
	}
}

func TestKeysKeepFirstSetOrder(t *testing.T) {
	a := New[int]().Set("a", 1).Set("b", 2).Set("a", 3).Set("c", 4)

	if got := a.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("keys = %v", got)
	}

	var vs []int

	a.Each(func(_ string, v int) {
		vs = append(vs, v)
	})

	if !reflect.DeepEqual(vs, []int{3, 2, 4}) {
		t.Fatalf("values = %v", vs)
	}
}

func TestEachLongChain(t *testing.T) {
	a := New[int]()

	for round := 0; round < 2; round++ {
		for i := 0; i < 5000; i++ {
			a = a.Set(strconv.Itoa(i), round*5000+i)
		}
	}

	n := 0

	a.Each(func(k string, v int) {
		if k != strconv.Itoa(n) || v != 5000+n {
			t.Fatalf("visit %d was %s = %d", n, k, v)
		}

		n++
	})

	if n != 5000 {
		t.Fatalf("visited %d names", n)
	}
}

func TestMergePrefersOther(t *testing.T) {
	a := New[string]().Set("x", "a").Set("y", "a")
	o := Single("y", "o")

	m := a.Merge(o)

	if v, _ := m.Find("x"); v != "a" {
		t.Fatalf("m[x] = %s", v)
	}

	if v, _ := m.Find("y"); v != "o" {
		t.Fatalf("m[y] = %s", v)
	}

	if e := New[string]().Merge(o); !Equal(e, o, func(x, y string) bool { return x == y }) {
		t.Fatal("merging into an empty assoc should give the other")
	}
}

func TestEqualAndMap(t *testing.T) {
	eq := func(x, y int) bool { return x == y }

	a := New[int]().Set("x", 1).Set("y", 2)
	b := New[int]().Set("y", 2).Set("x", 1)

	if !Equal(a, b, eq) {
		t.Fatal("order of setting should not matter")
	}

	if Equal(a, b.Set("z", 0), eq) {
		t.Fatal("an extra name should matter")
	}

	d := Map(a, func(v int) int { return v * 2 })
	if v, _ := d.Find("y"); v != 4 {
		t.Fatalf("d[y] = %d, expected 4", v)
	}

	if _, ok := New[int]().Find("x"); ok {
		t.Fatal("empty assoc should find nothing")
	}
}
