package engine

import (
	"fmt"

	"github.com/piwi3910/FilmCut/internal/model"
)

// ComparisonScenario defines a named set of options to compare.
type ComparisonScenario struct {
	Name    string               `json:"name"`
	Options model.PackingOptions `json:"options"`
}

// ComparisonResult holds the packing result and summary figures for a
// single scenario. Err is set when the scenario cannot place every piece.
type ComparisonResult struct {
	Scenario        ComparisonScenario  `json:"scenario"`
	Result          model.PackingResult `json:"-"`
	BinsUsed        int                 `json:"bins_used"`
	UsedLength      float64             `json:"used_length"`
	WastePercentage float64             `json:"waste_percentage"`
	Err             error               `json:"-"`
	Error           string              `json:"error,omitempty"`
}

// CompareScenarios packs the same instances under each scenario and returns
// the results in scenario order. This enables side-by-side comparison of
// roll widths and rotation settings.
func CompareScenarios(scenarios []ComparisonScenario, instances []model.RectangleInstance) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cr := ComparisonResult{Scenario: scenario}
		result, err := Pack(instances, scenario.Options)
		if err != nil {
			cr.Err = err
			cr.Error = err.Error()
		} else {
			cr.Result = result
			cr.BinsUsed = len(result.Bins)
			cr.UsedLength = result.UsedLength
			cr.WastePercentage = result.WastePercentage
		}
		results = append(results, cr)
	}

	return results
}

// Best returns the index of the successful result with the shortest used
// length, breaking ties by waste percentage. It returns -1 if none succeeded.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.UsedLength < results[best].UsedLength-eps ||
			(r.UsedLength <= results[best].UsedLength+eps && r.WastePercentage < results[best].WastePercentage) {
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates what-if alternatives around the base
// options: rotation toggled, and every other roll width in the catalog.
func BuildDefaultScenarios(base model.PackingOptions, rolls []model.FilmRoll) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Options: base},
	}

	toggled := base
	toggled.AllowRotation = !base.AllowRotation
	if toggled.AllowRotation {
		scenarios = append(scenarios, ComparisonScenario{Name: "Rotation Allowed", Options: toggled})
	} else {
		scenarios = append(scenarios, ComparisonScenario{Name: "No Rotation", Options: toggled})
	}

	if base.Padding > 0 {
		noPad := base
		noPad.Padding = 0
		scenarios = append(scenarios, ComparisonScenario{Name: "No Padding", Options: noPad})
	}

	seen := map[float64]bool{base.StripWidth: true}
	for _, r := range rolls {
		if seen[r.Width] {
			continue
		}
		seen[r.Width] = true
		opts := base
		r.ApplyToOptions(&opts)
		scenarios = append(scenarios, ComparisonScenario{
			Name:    fmt.Sprintf("Roll %s (%.0fmm)", r.Name, r.Width),
			Options: opts,
		})
	}

	return scenarios
}
