package list

import (
	"testing"
)

type Reference struct {
	pid   uint
	vaddr int
}

var references ArrayList[Reference]

func TestArrayList_Struct(t *testing.T) {
	setupReferences()

	if references.Size() != 3 {
		t.Errorf("Expected size 3, got %d", references.Size())
	}

	value, index, found := references.Find(func(r Reference) bool {
		return r.pid == 2
	})
	if !found || index != 1 || value.vaddr != 200 {
		t.Errorf("Expected pid 2 with vaddr 200 at index 1, got %v at %d", value, index)
	}

	references.Remove(index)

	size := references.Size()
	if size != 2 {
		t.Errorf("Expected size 2, got %d", size)
	}

	_, _, found = references.Find(func(r Reference) bool {
		return r.pid == 2
	})
	if found {
		t.Errorf("Expected pid 2 to be removed")
	}
}

func setupReferences() {
	references = ArrayList[Reference]{}
	for i := 1; i <= 3; i++ {
		references.Add(Reference{
			pid:   uint(i),
			vaddr: i * 100,
		})
	}
}
