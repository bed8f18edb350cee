package graph

import (
	"strings"

	"github.com/gyaneshwarpardhi/blueprint/internal/ids"
	"github.com/gyaneshwarpardhi/blueprint/internal/typename"
)

// Direction says which way data flows through a port.
type Direction uint8

const (
	DirInput Direction = iota
	DirOutput
	DirInOut
)

var directionNames = map[Direction]string{
	DirInput:  "Input",
	DirOutput: "Output",
	DirInOut:  "InOut",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "Unknown"
}

// ParseDirection resolves a wire-format direction name.
func ParseDirection(name string) (Direction, bool) {
	for dir, dirName := range directionNames {
		if dirName == name {
			return dir, true
		}
	}
	return DirInput, false
}

// Port is a typed connection point on a node. Immutable after construction
// except for the type name, which goes through the validated setter.
type Port struct {
	id        ids.PortID
	name      string
	direction Direction
	kind      DataKind
	typeName  string
}

// NewPort creates a port. Ids come from the factory's port counter.
func NewPort(id ids.PortID, direction Direction, kind DataKind, name string) Port {
	return Port{id: id, name: name, direction: direction, kind: kind}
}

func (p *Port) ID() ids.PortID       { return p.id }
func (p *Port) Name() string         { return p.name }
func (p *Port) Direction() Direction { return p.direction }
func (p *Port) Kind() DataKind       { return p.kind }
func (p *Port) TypeName() string     { return p.typeName }

func (p *Port) IsInput() bool  { return p.direction == DirInput || p.direction == DirInOut }
func (p *Port) IsOutput() bool { return p.direction == DirOutput || p.direction == DirInOut }

// IsExecution reports whether the port carries control flow rather than data.
func (p *Port) IsExecution() bool { return p.kind == KindExecution }

// SetTypeName normalizes and stores a type name. It fails when the port's
// kind does not carry a type name at all, and when a wildcard marker is given
// for a kind that needs a concrete name (containers and nominal types).
// An empty or all-whitespace name clears the stored value.
func (p *Port) SetTypeName(name string) error {
	if !p.kind.RequiresTypeName() {
		return Errorf(CodeInvalidTypeName,
			"port %q: data kind %q does not support custom type names", p.name, p.kind)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		p.typeName = ""
		return nil
	}

	// Check the raw input: "*" normalizes to the empty string and would
	// otherwise slip past the wildcard rejection as a clear.
	if typename.IsWildcard(trimmed) && !p.kind.AllowsWildcardTypeName() {
		return Errorf(CodeInvalidTypeName,
			"port %q: universal marker %q is not allowed for data kind %q",
			p.name, trimmed, p.kind)
	}

	p.typeName = typename.Normalize(trimmed)
	return nil
}

// CanConnectTo is the pairwise connectability predicate, evaluated in the
// p -> other direction. It is pure and total; order matters for the numeric
// widening rules.
func (p *Port) CanConnectTo(other *Port) bool {
	if p.id == other.id {
		return false
	}

	directionOK := (p.IsOutput() && other.IsInput()) ||
		(p.IsInput() && other.IsOutput()) ||
		p.direction == DirInOut || other.direction == DirInOut
	if !directionOK {
		return false
	}

	// Execution ports connect only to execution ports.
	if p.IsExecution() || other.IsExecution() {
		return p.IsExecution() == other.IsExecution()
	}

	if p.kind == KindAny || other.kind == KindAny {
		return true
	}
	if p.kind == KindAuto || other.kind == KindAuto {
		return true
	}

	// Void only pairs with void.
	if p.kind == KindVoid || other.kind == KindVoid {
		return p.kind == other.kind
	}

	// Exact kind match; structural kinds additionally compare type names.
	if p.kind == other.kind {
		if p.kind.RequiresTypeName() {
			return typename.Compatible(p.typeName, other.typeName)
		}
		return true
	}

	// Template placeholders match by name.
	if p.kind == KindTemplate || other.kind == KindTemplate {
		return typename.Compatible(p.typeName, other.typeName)
	}

	// Pointer and reference interconvert when the pointee matches.
	if p.kind.isPointerLike() && other.kind.isPointerLike() {
		return typename.Compatible(p.typeName, other.typeName)
	}

	// Same-kind containers and nominal types were handled by the exact-match
	// branch; mixed kinds fall through, where only the string-sink rule can
	// still accept them.

	// Numeric promotions: integral widening, integral -> floating,
	// float -> double.
	if p.kind.widensTo(other.kind) {
		return true
	}
	if p.kind.isIntegral() && other.kind.isFloating() {
		return true
	}

	// Float and double interchange in both directions.
	if p.kind.isFloating() && other.kind.isFloating() {
		return true
	}

	// String conversions: string <-> string_view, and anything can be
	// stringified into a string-like sink.
	if p.kind.isStringLike() && other.kind.isStringLike() {
		return true
	}
	if other.kind.isStringLike() {
		return true
	}

	// Numeric -> bool, never the reverse.
	if other.kind == KindBool && p.kind.isNumeric() {
		return true
	}

	return false
}
