package hinterr

import "fmt"

// Error codes. Stable across releases; referenced by tests and docs.
const (
	CodeUnsupported       = "H001"
	CodeMalformed         = "H002"
	CodeDepthExceeded     = "H003"
	CodeExplainerContract = "H004"
)

// UnsupportedSignError indicates a hint whose sign has no registered
// handler. This is a gap in sign coverage (a bug in the engine or a
// hand-built dispatch table), never a user-input problem.
type UnsupportedSignError struct {
	Sign string
	Hint string // String() of the offending hint
}

func (e *UnsupportedSignError) Error() string {
	return fmt.Sprintf("%s: unsupported hint sign %s (hint %s): no handler registered", CodeUnsupported, e.Sign, e.Hint)
}

func NewUnsupportedSignError(sign, hint string) *UnsupportedSignError {
	return &UnsupportedSignError{Sign: sign, Hint: hint}
}

// MalformedHintError indicates a structurally invalid hint (e.g. a
// mapping subscripted by other than two children). Raised at the point
// of detection, before any check is assembled for the subtree.
type MalformedHintError struct {
	Hint   string
	Detail string
}

func (e *MalformedHintError) Error() string {
	return fmt.Sprintf("%s: malformed hint %s: %s", CodeMalformed, e.Hint, e.Detail)
}

func NewMalformedHintError(hint, detail string) *MalformedHintError {
	return &MalformedHintError{Hint: hint, Detail: detail}
}

// DepthExceededError indicates a hint nested more deeply than the fixed
// pith variable-name pool allows.
type DepthExceededError struct {
	Hint  string
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("%s: hint %s nested too deeply: depth limit is %d levels", CodeDepthExceeded, e.Hint, e.Limit)
}

func NewDepthExceededError(hint string, limit int) *DepthExceededError {
	return &DepthExceededError{Hint: hint, Limit: limit}
}

// ExplainerContractError indicates that a type's custom instance-failure
// explainer violated its contract (returned an empty explanation). Kept
// distinct from ordinary violations: a silently wrong diagnostic is
// worse than a loud failure.
type ExplainerContractError struct {
	Hint   string
	Origin string // name of the type implementing the explainer
	Detail string
}

func (e *ExplainerContractError) Error() string {
	return fmt.Sprintf("%s: hint %s: explainer on %s violated its contract: %s", CodeExplainerContract, e.Hint, e.Origin, e.Detail)
}

func NewExplainerContractError(hint, origin, detail string) *ExplainerContractError {
	return &ExplainerContractError{Hint: hint, Origin: origin, Detail: detail}
}
