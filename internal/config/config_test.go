package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/drill"
	"github.com/vovakirdan/math-arcade/internal/session"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultDrillConfigValid(t *testing.T) {
	if err := DefaultDrillConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg DrillConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if want := DefaultDrillConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config differs from DefaultDrillConfig\n got: %+v\nwant: %+v", cfg, want)
	}
}

func TestRulesMatchBuiltins(t *testing.T) {
	cfg := DefaultDrillConfig()
	for _, mode := range []session.Mode{session.ModePool, session.ModeTimed, session.ModeStreak} {
		t.Run(mode.String(), func(t *testing.T) {
			got := cfg.Rules(mode)
			want := session.DefaultRules(mode)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Rules(%s)\n got: %+v\nwant: %+v", mode, got, want)
			}
		})
	}
}

func TestLoadDrillCustomPathMergesDefaults(t *testing.T) {
	path := writeFile(t, "drill.yaml", "blitz:\n  game_seconds: 60\n  ops: [mul]\n")

	cfg, err := LoadDrill(path)
	if err != nil {
		t.Fatalf("LoadDrill: %v", err)
	}
	if cfg.Blitz.GameSeconds != 60 {
		t.Errorf("GameSeconds = %d, expected 60", cfg.Blitz.GameSeconds)
	}
	if len(cfg.Blitz.Ops) != 1 || cfg.Blitz.Ops[0].String() != "mul" {
		t.Errorf("Ops = %v, expected [mul]", cfg.Blitz.Ops)
	}
	if cfg.Blitz.Addend.Max != 20 {
		t.Errorf("unset keys should keep defaults, Addend.Max = %d", cfg.Blitz.Addend.Max)
	}
	if len(cfg.MathLab.Addition) != 10 {
		t.Errorf("unset sections should keep defaults, got %d addition facts", len(cfg.MathLab.Addition))
	}
}

func TestLoadDrillCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"malformed yaml", func(t *testing.T) string { return writeFile(t, "bad.yaml", "blitz: [oops\n") }},
		{"unknown operation", func(t *testing.T) string { return writeFile(t, "op.yaml", "blitz:\n  ops: [div]\n") }},
		{"pool too small", func(t *testing.T) string {
			return writeFile(t, "pool.yaml", "mathlab:\n  addition:\n    - {a: 1, b: 1, answer: 2}\n")
		}},
		{"max added too low", func(t *testing.T) string { return writeFile(t, "max.yaml", "max_added: 2\n") }},
		{"zero game seconds", func(t *testing.T) string { return writeFile(t, "timer.yaml", "blitz:\n  game_seconds: 0\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadDrill(tt.path(t)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDrillFallsBackToEmbedded(t *testing.T) {
	// Run from an empty directory with no home config.
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadDrill("")
	if err != nil {
		t.Fatalf("LoadDrill: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultDrillConfig()) {
		t.Error("expected embedded defaults")
	}
}

func TestLoadDrillPrefersLocalConfigs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "drill.yaml"), []byte("streak:\n  question_seconds: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadDrill("")
	if err != nil {
		t.Fatalf("LoadDrill: %v", err)
	}
	if cfg.Streak.QuestionSeconds != 4 {
		t.Errorf("QuestionSeconds = %d, expected 4 from ./configs", cfg.Streak.QuestionSeconds)
	}
}

func TestWriteDrillThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "drill.yaml")
	want := DefaultDrillConfig()
	want.Blitz.GameSeconds = 42

	if err := WriteDrill(path, want); err != nil {
		t.Fatalf("WriteDrill: %v", err)
	}
	got, err := LoadDrill(path)
	if err != nil {
		t.Fatalf("LoadDrill: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		gameSeconds  int
		questionSecs int
		rampEnabled  bool
	}{
		{DifficultyEasy, 45, 15, false},
		{DifficultyNormal, 30, 10, false},
		{DifficultyHard, 20, 6, false},
		{DifficultyFixed, 30, 10, false},
		{DifficultyGrowing, 30, 10, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultDrillConfig()
			ApplyPreset(&cfg, tt.preset)

			if cfg.Blitz.GameSeconds != tt.gameSeconds {
				t.Errorf("Blitz.GameSeconds = %d, want %d", cfg.Blitz.GameSeconds, tt.gameSeconds)
			}
			if cfg.Streak.QuestionSeconds != tt.questionSecs {
				t.Errorf("Streak.QuestionSeconds = %d, want %d", cfg.Streak.QuestionSeconds, tt.questionSecs)
			}
			for _, a := range []ArcadeConfig{cfg.Blitz, cfg.Streak} {
				if a.Difficulty.Enabled != tt.rampEnabled {
					t.Errorf("Difficulty.Enabled = %v, want %v", a.Difficulty.Enabled, tt.rampEnabled)
				}
				if tt.rampEnabled && (a.Difficulty.Growth <= 0 || a.Difficulty.MaxAt <= 0) {
					t.Errorf("growing preset left an inert ramp: %+v", a.Difficulty)
				}
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced invalid config: %v", tt.preset, err)
			}
		})
	}

	cfg := DefaultDrillConfig()
	ApplyPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultDrillConfig()) {
		t.Error("empty preset should not change the config")
	}
}

// playCorrect answers n arcade problems correctly and returns every problem shown.
func playCorrect(t *testing.T, rules session.Rules, n int) []drill.Problem {
	t.Helper()
	m, err := session.NewMachine(rules)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	s, _ := m.Apply(m.NewSession(9), session.StartGame())

	var shown []drill.Problem
	for range n {
		p, ok := s.Current()
		if !ok {
			t.Fatalf("round ended early: phase %v", s.Phase)
		}
		shown = append(shown, p)

		var effects []core.Effect
		s, effects = m.Apply(s, session.SelectChoice(p.Answer))
		for _, e := range effects {
			if e.Kind == core.EffectSchedule {
				s, _ = m.Apply(s, session.Fire(e.Token))
			}
		}
	}
	return shown
}

func maxOperands(problems []drill.Problem) (addend, minuend, factor int) {
	for _, p := range problems {
		switch p.Op {
		case drill.OpAdd:
			addend = max(addend, p.A, p.B)
		case drill.OpSubtract:
			minuend = max(minuend, p.A)
		case drill.OpMultiply:
			factor = max(factor, p.A, p.B)
		}
	}
	return addend, minuend, factor
}

func TestShippedConfigKeepsStandardRanges(t *testing.T) {
	var embedded DrillConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}

	configs := map[string]DrillConfig{
		"builtin":  DefaultDrillConfig(),
		"embedded": embedded,
	}
	for _, preset := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		cfg := DefaultDrillConfig()
		ApplyPreset(&cfg, preset)
		configs[string(preset)] = cfg
	}

	for name, cfg := range configs {
		for _, mode := range []session.Mode{session.ModeTimed, session.ModeStreak} {
			t.Run(name+"/"+mode.String(), func(t *testing.T) {
				addend, minuend, factor := maxOperands(playCorrect(t, cfg.Rules(mode), 400))
				if addend > 20 || minuend > 29 || factor > 10 {
					t.Errorf("max addend %d, minuend %d, factor %d; want <= 20, 29, 10", addend, minuend, factor)
				}
			})
		}
	}
}

func TestGrowingPresetWidensRanges(t *testing.T) {
	cfg := DefaultDrillConfig()
	ApplyPreset(&cfg, DifficultyGrowing)

	addend, minuend, _ := maxOperands(playCorrect(t, cfg.Rules(session.ModeTimed), 400))
	if addend <= 20 && minuend <= 29 {
		t.Errorf("growing preset never left the standard ranges: addend %d, minuend %d", addend, minuend)
	}
}

func TestFixedPresetOverridesFileRamp(t *testing.T) {
	path := writeFile(t, "drill.yaml",
		"blitz:\n  difficulty:\n    enabled: true\n    initial_level: 0.5\n    max_at: 100\n    growth: 10\n")
	cfg, err := LoadDrill(path)
	if err != nil {
		t.Fatalf("LoadDrill: %v", err)
	}
	ApplyPreset(&cfg, DifficultyFixed)

	addend, minuend, factor := maxOperands(playCorrect(t, cfg.Rules(session.ModeTimed), 200))
	if addend > 20 || minuend > 29 || factor > 10 {
		t.Errorf("fixed preset grew ranges: addend %d, minuend %d, factor %d", addend, minuend, factor)
	}
}
