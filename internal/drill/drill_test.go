package drill

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationApply(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b int
		want int
	}{
		{OpAdd, 2, 3, 5},
		{OpSubtract, 8, 3, 5},
		{OpMultiply, 7, 6, 42},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Apply(tt.a, tt.b))
		})
	}
}

func TestParseOperation(t *testing.T) {
	for _, s := range []string{"add", "+", "sub", "-", "mul", "*", "×"} {
		_, err := ParseOperation(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseOperation("div")
	assert.Error(t, err)

	var op Operation
	require.NoError(t, op.UnmarshalText([]byte("sub")))
	assert.Equal(t, OpSubtract, op)
}

func TestProblemValidate(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
		wantErr error
	}{
		{"valid", Problem{A: 8, B: 3, Op: OpSubtract, Answer: 5, Choices: []int{2, 5, 7, 9}}, nil},
		{"wrong answer", Problem{A: 8, B: 3, Op: OpSubtract, Answer: 6, Choices: []int{2, 6, 7, 9}}, ErrInconsistentAnswer},
		{"missing answer", Problem{A: 2, B: 3, Op: OpAdd, Answer: 5, Choices: []int{1, 2, 3, 4}}, ErrMissingAnswer},
		{"duplicate", Problem{A: 2, B: 3, Op: OpAdd, Answer: 5, Choices: []int{5, 5, 3, 4}}, ErrDuplicateChoice},
		{"negative", Problem{A: 2, B: 3, Op: OpAdd, Answer: 5, Choices: []int{5, -1, 3, 4}}, ErrNegativeChoice},
		{"too few", Problem{A: 2, B: 3, Op: OpAdd, Answer: 5, Choices: []int{5, 4}}, ErrChoiceCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.problem.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPoolGeneratorDefaultsValid(t *testing.T) {
	require.NoError(t, DefaultPoolGenerator().Validate())
}

func TestPoolGeneratorFollowsPattern(t *testing.T) {
	g := DefaultPoolGenerator()

	for seed := int64(1); seed <= 50; seed++ {
		problems := g.Generate(rand.New(rand.NewSource(seed)))
		require.Len(t, problems, len(DefaultPattern))

		seenAdd := map[Fact]bool{}
		seenSub := map[Fact]bool{}
		for i, p := range problems {
			assert.Equal(t, DefaultPattern[i], p.Op, "slot %d", i)
			require.NoError(t, p.Validate(), "seed %d slot %d", seed, i)
			assert.True(t, slices.IsSorted(p.Choices), "pool choices should be sorted")
			assert.Len(t, p.Choices, 4)

			f := Fact{A: p.A, B: p.B, Answer: p.Answer}
			switch p.Op {
			case OpAdd:
				assert.True(t, slices.Contains(AdditionFacts, f))
				assert.False(t, seenAdd[f], "addition fact reused: %v", f)
				seenAdd[f] = true
			case OpSubtract:
				assert.True(t, slices.Contains(SubtractionFacts, f))
				assert.False(t, seenSub[f], "subtraction fact reused: %v", f)
				seenSub[f] = true
			}
			for _, c := range p.Choices {
				if c != p.Answer {
					assert.GreaterOrEqual(t, c, 1)
					assert.LessOrEqual(t, c, 10)
				}
			}
		}
	}
}

func TestPoolGeneratorDeterministic(t *testing.T) {
	g := DefaultPoolGenerator()
	a := g.Generate(rand.New(rand.NewSource(42)))
	b := g.Generate(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestPoolGeneratorValidate(t *testing.T) {
	small := DefaultPoolGenerator()
	small.Subtraction = small.Subtraction[:4]
	assert.ErrorIs(t, small.Validate(), ErrPoolTooSmall)

	bad := DefaultPoolGenerator()
	bad.Addition = append(bad.Addition, Fact{A: 1, B: 1, Answer: 3})
	assert.ErrorIs(t, bad.Validate(), ErrInconsistentAnswer)

	narrow := DefaultPoolGenerator()
	narrow.ChoiceMax = 3
	assert.Error(t, narrow.Validate())

	mul := DefaultPoolGenerator()
	mul.Pattern = []Operation{OpMultiply}
	assert.Error(t, mul.Validate())
}

func TestPoolGeneratorPanicsOnBadSizing(t *testing.T) {
	g := DefaultPoolGenerator()
	g.Addition = nil
	assert.Panics(t, func() {
		g.Generate(rand.New(rand.NewSource(1)))
	})
}

func TestRangeGeneratorInvariants(t *testing.T) {
	g := DefaultRangeGenerator()
	require.NoError(t, g.Validate())

	rng := rand.New(rand.NewSource(7))
	seenOps := map[Operation]bool{}
	for range 2000 {
		p := g.Next(rng)
		require.NoError(t, p.Validate(), "%s", p)
		assert.Len(t, p.Choices, 4)
		seenOps[p.Op] = true

		switch p.Op {
		case OpAdd:
			assert.True(t, p.A >= 1 && p.A <= 20 && p.B >= 1 && p.B <= 20, "%s", p)
		case OpSubtract:
			assert.True(t, p.A >= 10 && p.A <= 29, "%s", p)
			assert.True(t, p.B >= 0 && p.B < p.A, "%s", p)
			assert.Positive(t, p.Answer)
		case OpMultiply:
			assert.True(t, p.A >= 1 && p.A <= 10 && p.B >= 1 && p.B <= 10, "%s", p)
		}
	}
	assert.Len(t, seenOps, 3)
}

func TestRangeGeneratorOpsSubset(t *testing.T) {
	g := DefaultRangeGenerator()
	g.Ops = []Operation{OpAdd, OpSubtract}

	rng := rand.New(rand.NewSource(3))
	for range 500 {
		assert.NotEqual(t, OpMultiply, g.Next(rng).Op)
	}
}

func TestRangeDistractorsFallback(t *testing.T) {
	// With answer 0 and offsets of ±1 only +1 is ever acceptable, so the
	// loop must give up and fill the rest deterministically.
	g := DefaultRangeGenerator()
	g.MaxOffset = 1
	g.MaxAttempts = 10

	got := g.distractors(rand.New(rand.NewSource(1)), 0)
	require.Len(t, got, 3)
	slices.Sort(got)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestRangeGeneratorValidate(t *testing.T) {
	g := DefaultRangeGenerator()
	g.Minuend = Range{Min: 0, Max: 5}
	assert.Error(t, g.Validate())

	g = DefaultRangeGenerator()
	g.Ops = nil
	assert.Error(t, g.Validate())

	g = DefaultRangeGenerator()
	g.Factor = Range{Min: 5, Max: 1}
	assert.Error(t, g.Validate())

	g = DefaultRangeGenerator()
	g.MaxAttempts = 0
	assert.Error(t, g.Validate())
}

func TestRampLevel(t *testing.T) {
	tests := []struct {
		name  string
		ramp  Ramp
		score int
		want  float64
	}{
		{"disabled keeps initial", Ramp{InitialLevel: 0.3, MaxAt: 100}, 500, 0.3},
		{"start", Ramp{Enabled: true, MaxAt: 100}, 0, 0},
		{"halfway", Ramp{Enabled: true, MaxAt: 100}, 50, 0.5},
		{"capped", Ramp{Enabled: true, MaxAt: 100}, 900, 1},
		{"from initial", Ramp{Enabled: true, InitialLevel: 0.5, MaxAt: 100}, 50, 0.75},
		{"zero max_at", Ramp{Enabled: true}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.ramp.Level(tt.score), 1e-9)
		})
	}
}

func TestRampApply(t *testing.T) {
	g := DefaultRangeGenerator()
	r := Ramp{Enabled: true, MaxAt: 100, Growth: 20}

	assert.Equal(t, g, r.Apply(g, 0))

	wide := r.Apply(g, 100)
	assert.Equal(t, 40, wide.Addend.Max)
	assert.Equal(t, 49, wide.Minuend.Max)
	assert.Equal(t, 20, wide.Factor.Max)
	assert.Equal(t, g.Addend.Min, wide.Addend.Min)
	require.NoError(t, wide.Validate())

	// The input generator is not modified.
	assert.Equal(t, 20, g.Addend.Max)
}

func TestRampApplyDisabled(t *testing.T) {
	g := DefaultRangeGenerator()

	// An initial level on a disabled ramp must not widen anything.
	r := Ramp{InitialLevel: 0.5, MaxAt: 100, Growth: 20}
	assert.Equal(t, g, r.Apply(g, 0))
	assert.Equal(t, g, r.Apply(g, 1000))

	assert.Equal(t, g, Ramp{}.Apply(g, 1000))
}
