// Package drill generates the arithmetic problems served by the drill games.
// It has no dependencies beyond the standard library so that generation stays
// deterministic for a given random source.
package drill

import (
	"errors"
	"fmt"
	"slices"
)

// Operation is the arithmetic operation of a problem.
type Operation int

const (
	OpAdd Operation = iota
	OpSubtract
	OpMultiply
)

// String returns the short config name of the operation ("add", "sub", "mul").
func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "sub"
	case OpMultiply:
		return "mul"
	default:
		return "unknown"
	}
}

// Symbol returns the operator glyph used when rendering an equation.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	default:
		return "?"
	}
}

// Apply computes a <op> b under integer arithmetic.
func (o Operation) Apply(a, b int) int {
	switch o {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	default:
		return 0
	}
}

// ParseOperation parses a config name or symbol into an Operation.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "add", "+", "addition":
		return OpAdd, nil
	case "sub", "-", "subtraction":
		return OpSubtract, nil
	case "mul", "*", "×", "multiplication":
		return OpMultiply, nil
	}
	return 0, fmt.Errorf("drill: unknown operation %q", s)
}

// MarshalText implements encoding.TextMarshaler so operations read well in YAML.
func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(text []byte) error {
	op, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Fact is a curated pool entry: A <op> B = Answer.
type Fact struct {
	A      int `yaml:"a"`
	B      int `yaml:"b"`
	Answer int `yaml:"answer"`
}

// Problem is a single question shown to the player.
type Problem struct {
	A       int
	B       int
	Op      Operation
	Answer  int
	Choices []int
}

// Errors reported by Problem.Validate.
var (
	ErrInconsistentAnswer = errors.New("drill: answer does not match operands")
	ErrMissingAnswer      = errors.New("drill: choices do not contain the answer")
	ErrDuplicateChoice    = errors.New("drill: duplicate choice")
	ErrNegativeChoice     = errors.New("drill: negative choice")
	ErrChoiceCount        = errors.New("drill: choice count out of range")
)

// Validate checks the invariants every generated problem must satisfy.
func (p Problem) Validate() error {
	if p.Op.Apply(p.A, p.B) != p.Answer {
		return fmt.Errorf("%w: %s", ErrInconsistentAnswer, p)
	}
	if len(p.Choices) < 3 || len(p.Choices) > 4 {
		return fmt.Errorf("%w: %d", ErrChoiceCount, len(p.Choices))
	}
	seen := make(map[int]bool, len(p.Choices))
	for _, c := range p.Choices {
		if c < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeChoice, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %d", ErrDuplicateChoice, c)
		}
		seen[c] = true
	}
	if !seen[p.Answer] {
		return fmt.Errorf("%w: %d", ErrMissingAnswer, p.Answer)
	}
	return nil
}

// HasChoice reports whether v is one of the offered choices.
func (p Problem) HasChoice(v int) bool {
	return slices.Contains(p.Choices, v)
}

// String renders the equation without its answer, e.g. "8 - 3".
func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d", p.A, p.Op.Symbol(), p.B)
}
