package schedule

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable parts of schedule parsing: the substring
// tables used for noise/role/title detection and the date resolution
// window. Matching is case-sensitive substring containment; the terms
// come from observed schedule screenshots and tend to need adjustment
// when the OCR source changes, which is why they live in configuration
// rather than code.
type Rules struct {
	// NoiseTerms mark a whole line as administrative noise.
	NoiseTerms []string `yaml:"noise_terms"`
	// RoleTerms mark lines skipped while looking for a shift title.
	RoleTerms []string `yaml:"role_terms"`
	// TitleMarkers identify a line as a shift title (location label).
	TitleMarkers []string `yaml:"title_markers"`
	// LookBehindDays / LookAheadDays bound the date resolution window
	// around the run's reference instant.
	LookBehindDays int `yaml:"look_behind_days"`
	LookAheadDays  int `yaml:"look_ahead_days"`
	// TitleLookahead is how many lines past a shift span are examined
	// for a title before the shift is dropped.
	TitleLookahead int `yaml:"title_lookahead"`
}

func DefaultRules() *Rules {
	return &Rules{
		NoiseTerms:     []string{"Associate", "Schedule", "hours"},
		RoleTerms:      []string{"Associate"},
		TitleMarkers:   []string{"Store", "#"},
		LookBehindDays: 7,
		LookAheadDays:  40,
		TitleLookahead: 2,
	}
}

// LoadRules reads a rules file, falling back to the built-in defaults
// when path is empty. Zero values in the file are filled from defaults.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	rules.Normalize()

	return &rules, nil
}

// Normalize fills missing values with defaults so partial rules files
// behave correctly.
func (r *Rules) Normalize() {
	defaults := DefaultRules()
	if r.NoiseTerms == nil {
		r.NoiseTerms = defaults.NoiseTerms
	}
	if r.RoleTerms == nil {
		r.RoleTerms = defaults.RoleTerms
	}
	if r.TitleMarkers == nil {
		r.TitleMarkers = defaults.TitleMarkers
	}
	if r.LookBehindDays <= 0 {
		r.LookBehindDays = defaults.LookBehindDays
	}
	if r.LookAheadDays <= 0 {
		r.LookAheadDays = defaults.LookAheadDays
	}
	if r.TitleLookahead <= 0 {
		r.TitleLookahead = defaults.TitleLookahead
	}
}

func (r *Rules) IsNoise(text string) bool {
	if text == "" {
		return true
	}
	return containsAny(text, r.NoiseTerms)
}

func (r *Rules) HasRoleTerm(text string) bool {
	return containsAny(text, r.RoleTerms)
}

func (r *Rules) HasTitleMarker(text string) bool {
	return containsAny(text, r.TitleMarkers)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}
