package hint

import (
	"fmt"
	"reflect"
	"sort"
)

// SampleIndex maps a per-call random integer onto a container index.
// Both the compiled check and the cause sleuth derive the sampled
// position through this one function, so a failing call and its
// diagnosis always blame the identical element.
func SampleIndex(randInt uint64, length int) int {
	if length <= 0 {
		return 0
	}
	return int(randInt % uint64(length))
}

// SampleKey picks one key of a map deterministically given the per-call
// random integer. Go map iteration order is deliberately randomized per
// range, so "first pair" is not reproducible; instead keys are ordered
// by rendered form and indexed. Collecting the keys costs O(n), but the
// sampling contract is about how many ITEMS are deep-checked, and only
// one key/value pair is.
func SampleKey(m reflect.Value, randInt uint64) reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	return keys[SampleIndex(randInt, len(keys))]
}

// SortedKeys returns all keys of a map in the same deterministic order
// SampleKey indexes into. The O(n) strategy iterates this slice so that
// diagnosis visits pairs in a stable order.
func SortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	return keys
}

// keyLess orders keys by rendered form, breaking ties on the dynamic
// type name: a map[any]any may hold keys of different types that
// render identically (1 and "1"), and ties left to the sort would
// reorder between calls, making the checker and the sleuth blame
// different pairs.
func keyLess(a, b reflect.Value) bool {
	ra, rb := renderKey(a), renderKey(b)
	if ra != rb {
		return ra < rb
	}
	return keyTypeName(a) < keyTypeName(b)
}

func renderKey(k reflect.Value) string {
	return fmt.Sprintf("%v", k.Interface())
}

func keyTypeName(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	return k.Type().String()
}
