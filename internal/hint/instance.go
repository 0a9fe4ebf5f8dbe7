package hint

import (
	"reflect"
	"sync"
)

// InstanceExplainer lets a class supply its own diagnosis when an
// instance check against it fails. The contract: the returned string
// must be non-empty; an empty return is a bug in the implementing type
// and is reported as a distinct contract error by the sleuth, never
// silently degraded into a generic message.
type InstanceExplainer interface {
	ExplainInstanceFailure(pith any) string
}

var explainerIface = reflect.TypeOf((*InstanceExplainer)(nil)).Elem()

// IsNil reports whether a pith is nil in the sense the None hint means:
// an untyped nil, or a nil value of a nilable kind.
func IsNil(pith any) bool {
	if pith == nil {
		return true
	}
	v := reflect.ValueOf(pith)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// IsInstance reports whether pith's dynamic type satisfies the class t.
// Interface classes are satisfied by implementation, concrete classes
// by assignability. With numericTower set, integer piths additionally
// satisfy float classes (the widening direction only).
func IsInstance(pith any, t reflect.Type, numericTower bool) bool {
	if t == nil {
		return false
	}
	if pith == nil {
		return false
	}
	pt := reflect.TypeOf(pith)
	if t.Kind() == reflect.Interface {
		return pt.Implements(t)
	}
	if pt.AssignableTo(t) {
		return true
	}
	if numericTower && isFloatType(t) && isIntKind(pt.Kind()) {
		return true
	}
	return false
}

// IsInstanceAny reports whether pith satisfies any of the given classes.
// This is the single cheap test a union's shallow partition compiles to.
func IsInstanceAny(pith any, types []reflect.Type, numericTower bool) bool {
	for _, t := range types {
		if IsInstance(pith, t, numericTower) {
			return true
		}
	}
	return false
}

func isFloatType(t reflect.Type) bool {
	k := t.Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// IsSequence reports whether pith is a slice or array, additionally
// assignable to origin when one is given. The returned Value is valid
// only when ok is true.
func IsSequence(pith any, origin reflect.Type) (reflect.Value, bool) {
	if pith == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(pith)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	if origin != nil && !v.Type().AssignableTo(origin) {
		return reflect.Value{}, false
	}
	return v, true
}

// IsMapping is the map analogue of IsSequence.
func IsMapping(pith any, origin reflect.Type) (reflect.Value, bool) {
	if pith == nil {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(pith)
	if v.Kind() != reflect.Map {
		return reflect.Value{}, false
	}
	if origin != nil && !v.Type().AssignableTo(origin) {
		return reflect.Value{}, false
	}
	return v, true
}

// IsSubtype reports whether the pith, which must itself be a
// reflect.Type, is a subtype of the class t: assignable to it, or
// implementing it for interface classes. Every type is a subtype of
// itself.
func IsSubtype(pith any, t reflect.Type) bool {
	pt, ok := pith.(reflect.Type)
	if !ok || t == nil {
		return false
	}
	if t.Kind() == reflect.Interface {
		return pt.Implements(t)
	}
	return pt.AssignableTo(t)
}

// explainerMemo caches Explainer results per class. The lookup is pure
// with respect to its argument (it closes over no call-scoped state),
// which is the condition for memoizing it; helpers carrying per-call
// context must never be cached this way. sync.Map gives the concurrent
// insert-if-absent semantics multiple decorating goroutines need.
var explainerMemo sync.Map // reflect.Type -> explainerEntry

type explainerEntry struct {
	explainer InstanceExplainer
	ok        bool
}

// Explainer returns the custom instance-failure explainer for a class,
// if its origin type provides one. Interface classes cannot carry an
// explainer (a zero interface value is nil and not callable).
func Explainer(t reflect.Type) (InstanceExplainer, bool) {
	if cached, hit := explainerMemo.Load(t); hit {
		e := cached.(explainerEntry)
		return e.explainer, e.ok
	}
	e, ok := lookupExplainer(t)
	explainerMemo.Store(t, explainerEntry{explainer: e, ok: ok})
	return e, ok
}

func lookupExplainer(t reflect.Type) (InstanceExplainer, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return nil, false
	}
	if t.Implements(explainerIface) {
		e, ok := reflect.Zero(t).Interface().(InstanceExplainer)
		return e, ok
	}
	if reflect.PointerTo(t).Implements(explainerIface) {
		e, ok := reflect.New(t).Interface().(InstanceExplainer)
		return e, ok
	}
	return nil, false
}

// EqualLiteral compares a pith against one captured literal value.
// Comparison is by interface equality with a numeric widening step so
// that int literals match int piths of any width.
func EqualLiteral(pith, lit any) bool {
	if pith == lit {
		return true
	}
	pv := reflect.ValueOf(pith)
	lv := reflect.ValueOf(lit)
	if !pv.IsValid() || !lv.IsValid() {
		return false
	}
	pi, pok := intValue(pv)
	li, lok := intValue(lv)
	if pok && lok {
		return pi == li
	}
	return false
}

func intValue(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > 1<<62 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}
