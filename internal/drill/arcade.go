package drill

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// pick returns a uniform value in [Min, Max].
func (r Range) pick(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

func (r Range) valid() bool {
	return r.Min <= r.Max
}

// RangeGenerator draws arcade problems from operand ranges.
type RangeGenerator struct {
	Ops     []Operation
	Addend  Range // both addends
	Minuend Range // subtrahend is drawn from [0, minuend)
	Factor  Range // both factors

	Distractors int // distractors per problem
	MaxOffset   int // distractor offsets are drawn from ±[1, MaxOffset]
	MaxAttempts int // cap on offset draws before the deterministic fallback
}

// DefaultRangeGenerator returns the Math Blitz generator (+, -, ×).
func DefaultRangeGenerator() RangeGenerator {
	return RangeGenerator{
		Ops:         []Operation{OpAdd, OpSubtract, OpMultiply},
		Addend:      Range{Min: 1, Max: 20},
		Minuend:     Range{Min: 10, Max: 29},
		Factor:      Range{Min: 1, Max: 10},
		Distractors: 3,
		MaxOffset:   5,
		MaxAttempts: 64,
	}
}

// Validate checks that every range can be drawn from.
func (g RangeGenerator) Validate() error {
	if len(g.Ops) == 0 {
		return errors.New("drill: range generator has no operations")
	}
	for _, op := range g.Ops {
		var r Range
		switch op {
		case OpAdd:
			r = g.Addend
		case OpSubtract:
			r = g.Minuend
			if r.Min < 1 {
				return fmt.Errorf("drill: minuend range must start at 1 or more, got %d", r.Min)
			}
		case OpMultiply:
			r = g.Factor
		default:
			return fmt.Errorf("drill: unsupported operation %d", int(op))
		}
		if !r.valid() || r.Min < 0 {
			return fmt.Errorf("drill: bad %s range [%d,%d]", op, r.Min, r.Max)
		}
	}
	if g.Distractors < 2 || g.Distractors > 3 {
		return fmt.Errorf("drill: distractors must be 2 or 3, got %d", g.Distractors)
	}
	if g.MaxOffset < 1 {
		return fmt.Errorf("drill: max offset must be positive, got %d", g.MaxOffset)
	}
	if g.MaxAttempts < 1 {
		return fmt.Errorf("drill: max attempts must be positive, got %d", g.MaxAttempts)
	}
	return nil
}

// Next draws one problem. The choices are shuffled.
func (g RangeGenerator) Next(rng *rand.Rand) Problem {
	op := g.Ops[rng.Intn(len(g.Ops))]

	var a, b int
	switch op {
	case OpAdd:
		a, b = g.Addend.pick(rng), g.Addend.pick(rng)
	case OpSubtract:
		a = g.Minuend.pick(rng)
		b = rng.Intn(a)
	case OpMultiply:
		a, b = g.Factor.pick(rng), g.Factor.pick(rng)
	}
	answer := op.Apply(a, b)

	choices := append([]int{answer}, g.distractors(rng, answer)...)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return Problem{A: a, B: b, Op: op, Answer: answer, Choices: choices}
}

// distractors applies random signed offsets to the answer, rejecting
// collisions and negatives. After MaxAttempts draws the remainder is filled
// with answer+1, answer+2, ... skipping values already taken.
func (g RangeGenerator) distractors(rng *rand.Rand, answer int) []int {
	out := make([]int, 0, g.Distractors)
	taken := func(v int) bool {
		return v == answer || slices.Contains(out, v)
	}

	for attempt := 0; attempt < g.MaxAttempts && len(out) < g.Distractors; attempt++ {
		offset := 1 + rng.Intn(g.MaxOffset)
		if rng.Intn(2) == 0 {
			offset = -offset
		}
		v := answer + offset
		if v < 0 || taken(v) {
			continue
		}
		out = append(out, v)
	}

	for v := answer + 1; len(out) < g.Distractors; v++ {
		if !taken(v) {
			out = append(out, v)
		}
	}
	return out
}
