package drill

// Ramp widens operand ranges as the score grows.
// At level 0 ranges are used as configured; at level 1 the upper bound of
// the addend and minuend ranges grows by Growth and the factor range by half
// of it. The zero Ramp is off and leaves the configured ranges alone.
type Ramp struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	MaxAt        int     `yaml:"max_at"`        // score at which level 1 is reached
	Growth       int     `yaml:"growth"`
}

// Level returns the difficulty level in [0, 1] for score.
// A disabled ramp stays at its initial level.
func (r Ramp) Level(score int) float64 {
	initial := clampLevel(r.InitialLevel)
	if !r.Enabled {
		return initial
	}

	maxAt := float64(r.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampLevel(float64(score) / maxAt)
	return initial + progress*(1.0-initial)
}

// Apply returns g with its ranges widened for score.
// A disabled ramp returns g unchanged whatever its initial level.
func (r Ramp) Apply(g RangeGenerator, score int) RangeGenerator {
	if !r.Enabled || r.Growth <= 0 {
		return g
	}
	level := r.Level(score)
	grow := int(level * float64(r.Growth))

	g.Addend.Max += grow
	g.Minuend.Max += grow
	g.Factor.Max += grow / 2
	return g
}

func clampLevel(v float64) float64 {
	return max(0.0, min(1.0, v))
}
