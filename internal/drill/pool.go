package drill

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// AdditionFacts are the curated addition facts of Math Lab.
var AdditionFacts = []Fact{
	{A: 2, B: 3, Answer: 5}, {A: 4, B: 2, Answer: 6},
	{A: 5, B: 1, Answer: 6}, {A: 3, B: 3, Answer: 6},
	{A: 1, B: 4, Answer: 5}, {A: 6, B: 2, Answer: 8},
	{A: 2, B: 5, Answer: 7}, {A: 4, B: 4, Answer: 8},
	{A: 7, B: 2, Answer: 9}, {A: 3, B: 5, Answer: 8},
}

// SubtractionFacts are the curated subtraction facts of Math Lab.
var SubtractionFacts = []Fact{
	{A: 5, B: 2, Answer: 3}, {A: 6, B: 3, Answer: 3},
	{A: 8, B: 4, Answer: 4}, {A: 7, B: 2, Answer: 5},
	{A: 9, B: 5, Answer: 4}, {A: 4, B: 1, Answer: 3},
	{A: 10, B: 6, Answer: 4}, {A: 8, B: 3, Answer: 5},
	{A: 6, B: 4, Answer: 2}, {A: 5, B: 4, Answer: 1},
}

// DefaultPattern is the operation order of a ten-question Math Lab round.
var DefaultPattern = []Operation{
	OpAdd, OpAdd, OpSubtract, OpSubtract, OpAdd,
	OpAdd, OpSubtract, OpSubtract, OpAdd, OpSubtract,
}

// PoolGenerator builds a round from curated fact pools.
// Each pool is shuffled independently and the pattern picks, slot by slot,
// the next unused fact of the required operation.
type PoolGenerator struct {
	Addition    []Fact
	Subtraction []Fact
	Pattern     []Operation

	// Distractors are sampled without replacement from [ChoiceMin, ChoiceMax].
	ChoiceMin   int
	ChoiceMax   int
	Distractors int
}

// DefaultPoolGenerator returns the Math Lab generator.
func DefaultPoolGenerator() PoolGenerator {
	return PoolGenerator{
		Addition:    slices.Clone(AdditionFacts),
		Subtraction: slices.Clone(SubtractionFacts),
		Pattern:     slices.Clone(DefaultPattern),
		ChoiceMin:   1,
		ChoiceMax:   10,
		Distractors: 3,
	}
}

// ErrPoolTooSmall is returned when a pool cannot cover every slot of the pattern.
var ErrPoolTooSmall = errors.New("drill: pool smaller than pattern demand")

// Validate checks the static sizing that makes Generate total.
func (g PoolGenerator) Validate() error {
	if len(g.Pattern) == 0 {
		return errors.New("drill: empty pattern")
	}
	var needAdd, needSub int
	for _, op := range g.Pattern {
		switch op {
		case OpAdd:
			needAdd++
		case OpSubtract:
			needSub++
		default:
			return fmt.Errorf("drill: pattern operation %s has no pool", op)
		}
	}
	if len(g.Addition) < needAdd {
		return fmt.Errorf("%w: addition has %d facts, pattern needs %d", ErrPoolTooSmall, len(g.Addition), needAdd)
	}
	if len(g.Subtraction) < needSub {
		return fmt.Errorf("%w: subtraction has %d facts, pattern needs %d", ErrPoolTooSmall, len(g.Subtraction), needSub)
	}
	if err := checkFacts(g.Addition, OpAdd); err != nil {
		return err
	}
	if err := checkFacts(g.Subtraction, OpSubtract); err != nil {
		return err
	}
	if g.Distractors < 2 || g.Distractors > 3 {
		return fmt.Errorf("drill: distractors must be 2 or 3, got %d", g.Distractors)
	}
	// The answer may fall inside the range, so one slot is reserved for it.
	if g.ChoiceMax-g.ChoiceMin < g.Distractors {
		return fmt.Errorf("drill: choice range [%d,%d] too narrow for %d distractors", g.ChoiceMin, g.ChoiceMax, g.Distractors)
	}
	if g.ChoiceMin < 0 {
		return fmt.Errorf("drill: negative choice range start %d", g.ChoiceMin)
	}
	return nil
}

func checkFacts(facts []Fact, op Operation) error {
	for _, f := range facts {
		if op.Apply(f.A, f.B) != f.Answer {
			return fmt.Errorf("%w: %d %s %d = %d", ErrInconsistentAnswer, f.A, op.Symbol(), f.B, f.Answer)
		}
		if f.A < 0 || f.B < 0 || f.Answer < 0 {
			return fmt.Errorf("drill: negative value in fact %d %s %d", f.A, op.Symbol(), f.B)
		}
	}
	return nil
}

// Generate returns one round of problems in pattern order.
// It panics if the generator does not pass Validate.
func (g PoolGenerator) Generate(rng *rand.Rand) []Problem {
	if err := g.Validate(); err != nil {
		panic(err)
	}

	adds := shuffled(rng, g.Addition)
	subs := shuffled(rng, g.Subtraction)
	var addIdx, subIdx int

	problems := make([]Problem, 0, len(g.Pattern))
	for _, op := range g.Pattern {
		var f Fact
		if op == OpAdd {
			f = adds[addIdx]
			addIdx++
		} else {
			f = subs[subIdx]
			subIdx++
		}
		problems = append(problems, Problem{
			A:       f.A,
			B:       f.B,
			Op:      op,
			Answer:  f.Answer,
			Choices: g.choices(rng, f.Answer),
		})
	}
	return problems
}

// choices samples distractors without replacement from the choice range,
// so it never loops regardless of where the answer sits in the range.
func (g PoolGenerator) choices(rng *rand.Rand, answer int) []int {
	candidates := make([]int, 0, g.ChoiceMax-g.ChoiceMin+1)
	for v := g.ChoiceMin; v <= g.ChoiceMax; v++ {
		if v != answer {
			candidates = append(candidates, v)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	out := append([]int{answer}, candidates[:g.Distractors]...)
	slices.Sort(out)
	return out
}

func shuffled(rng *rand.Rand, facts []Fact) []Fact {
	out := slices.Clone(facts)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
