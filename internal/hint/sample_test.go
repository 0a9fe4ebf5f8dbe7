package hint

import (
	"reflect"
	"testing"
)

func TestSampleIndexWraps(t *testing.T) {
	if got := SampleIndex(7, 3); got != 1 {
		t.Errorf("SampleIndex(7, 3) = %d, want 1", got)
	}
	if got := SampleIndex(7, 0); got != 0 {
		t.Errorf("SampleIndex over an empty container = %d, want 0", got)
	}
}

func TestSortedKeysStableAcrossRenderCollisions(t *testing.T) {
	// The int key 1 and the string key "1" render identically; the
	// type-name tie-break must keep their order fixed run to run.
	m := reflect.ValueOf(map[any]any{1: "a", "1": "b", 2: "c"})

	first := SortedKeys(m)
	if len(first) != 3 {
		t.Fatalf("SortedKeys returned %d keys, want 3", len(first))
	}
	if keyTypeName(first[0]) != "int" || keyTypeName(first[1]) != "string" {
		t.Errorf("colliding keys ordered %s then %s, want int then string",
			keyTypeName(first[0]), keyTypeName(first[1]))
	}
	for run := 0; run < 20; run++ {
		again := SortedKeys(m)
		for i := range first {
			if renderKey(first[i]) != renderKey(again[i]) || keyTypeName(first[i]) != keyTypeName(again[i]) {
				t.Fatalf("run %d reordered key %d: %s/%s became %s/%s",
					run, i,
					renderKey(first[i]), keyTypeName(first[i]),
					renderKey(again[i]), keyTypeName(again[i]))
			}
		}
	}
}

func TestSampleKeyMatchesSortedKeys(t *testing.T) {
	m := reflect.ValueOf(map[any]any{1: "a", "1": "b", 2: "c"})
	keys := SortedKeys(m)
	for randInt := uint64(0); randInt < 6; randInt++ {
		want := keys[SampleIndex(randInt, len(keys))]
		got := SampleKey(m, randInt)
		if renderKey(got) != renderKey(want) || keyTypeName(got) != keyTypeName(want) {
			t.Errorf("SampleKey(%d) = %s/%s, want %s/%s",
				randInt, renderKey(got), keyTypeName(got), renderKey(want), keyTypeName(want))
		}
	}
}
