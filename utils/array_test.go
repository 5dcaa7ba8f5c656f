package utils

import (
	"reflect"
	"testing"
)

func TestSafeSlice(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	if got := SafeSlice(in, 3); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("SafeSlice(3) = %v", got)
	}
	if got := SafeSlice(in, 10); len(got) != 5 {
		t.Fatalf("SafeSlice(10) = %v", got)
	}
}

func TestRemoveFirst(t *testing.T) {
	in := []string{"a", "b", "a", "c"}
	out, ok := RemoveFirst(in, "a")
	if !ok {
		t.Fatal("expected removal")
	}
	if !reflect.DeepEqual(out, []string{"b", "a", "c"}) {
		t.Fatalf("RemoveFirst = %v", out)
	}
	if !reflect.DeepEqual(in, []string{"a", "b", "a", "c"}) {
		t.Fatalf("input mutated: %v", in)
	}

	if _, ok := RemoveFirst(in, "z"); ok {
		t.Fatal("unexpected removal of missing element")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger("debug", true); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if _, err := NewLogger("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewRoomID(t *testing.T) {
	a, b := NewRoomID(), NewRoomID()
	if len(a) != 8 || len(b) != 8 {
		t.Fatalf("ids %q %q", a, b)
	}
	if a == b {
		t.Fatalf("duplicate id %q", a)
	}
}
