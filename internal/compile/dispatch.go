package compile

import "github.com/hintwire/hintcheck/internal/hint"

// factory is the per-kind code factory contract: given the compiler
// (for enqueueing children and capturing scope objects) and the node's
// traversal record, emit the check node for that kind — or nil when the
// subtree turned out to be wholly ignorable.
type factory func(c *compiler, m *hintMeta) (*Node, error)

// factories maps every supported sign to its factory. The table is
// built with ordinary static initialization (no deferred init step);
// dispatch on a sign missing here fails loudly in the compiler loop.
//
// SignTypeVar has no entry on purpose: type variables reduce in the
// compiler loop before dispatch, so the factory layer never sees one.
var factories = map[hint.Sign]factory{
	hint.SignNone:          factoryClass,
	hint.SignAny:           factoryIgnorable,
	hint.SignNoneType:      factoryNone,
	hint.SignUnion:         factoryUnion,
	hint.SignSequence:      factorySequence,
	hint.SignTupleFixed:    factoryTupleFixed,
	hint.SignTupleVariadic: factorySequence,
	hint.SignMapping:       factoryMapping,
	hint.SignGeneric:       factoryGeneric,
	hint.SignLiteral:       factoryLiteral,
	hint.SignSubtype:       factorySubtype,
}
