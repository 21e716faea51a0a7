package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FilmCut/internal/model"
)

func TestSummarize(t *testing.T) {
	bins := []model.Bin{
		{Index: 0, Placements: []model.Placement{
			{X: 0, Y: 0, Width: 500, Height: 400},
			{X: 0, Y: 400, Width: 500, Height: 300},
		}},
		{Index: 1, Placements: []model.Placement{
			{X: 0, Y: 0, Width: 200, Height: 100},
		}},
	}

	st := Summarize(bins, 1000)
	assert.Equal(t, 800.0, st.UsedLength)
	assert.Equal(t, 800000.0, st.TotalUsedArea)
	assert.Equal(t, 370000.0, st.TotalPieceArea)
	assert.Equal(t, 430000.0, st.TotalWasteArea)
	assert.Equal(t, 53.75, st.WastePercentage)
}

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize(nil, 1000)
	assert.Equal(t, model.Stats{}, st)
}

func TestSummarizeRoundsPercentage(t *testing.T) {
	bins := []model.Bin{{Placements: []model.Placement{{Width: 100, Height: 300}}}}
	st := Summarize(bins, 300)
	// 200/300 waste
	assert.Equal(t, 66.67, st.WastePercentage)
}

func TestCompareScenarios(t *testing.T) {
	instances := model.Expand([]model.PieceSpec{piece("a", 700, 300, 4)})
	base := testOptions(1000, true)
	rolls := []model.FilmRoll{
		{Name: "Same", Width: 1000},
		{Name: "Wide", Width: 1400, Length: 20000},
		{Name: "Tiny", Width: 200},
	}

	scenarios := BuildDefaultScenarios(base, rolls)
	require.Len(t, scenarios, 4, "current, rotation toggled, wide, tiny")
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "No Rotation", scenarios[1].Name)
	assert.False(t, scenarios[1].Options.AllowRotation)
	assert.Equal(t, 1400.0, scenarios[2].Options.StripWidth)
	assert.Equal(t, 20000.0, scenarios[2].Options.MaxStripLength)

	results := CompareScenarios(scenarios, instances)
	require.Len(t, results, 4)

	// 700 wide pieces stack in one column on a 1000 roll; two fit side by
	// side on 1400.
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 1200.0, results[0].UsedLength)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 600.0, results[2].UsedLength)

	var unplaceable *model.UnplaceablePieceError
	assert.ErrorAs(t, results[3].Err, &unplaceable)
	assert.NotEmpty(t, results[3].Error)

	assert.Equal(t, 2, Best(results))
}

func TestBuildDefaultScenariosPadding(t *testing.T) {
	base := testOptions(1000, false)
	base.Padding = 5

	scenarios := BuildDefaultScenarios(base, nil)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Rotation Allowed", scenarios[1].Name)
	assert.Equal(t, "No Padding", scenarios[2].Name)
	assert.Zero(t, scenarios[2].Options.Padding)
}

func TestBestNoneSucceeded(t *testing.T) {
	results := []ComparisonResult{{Err: assert.AnError}, {Err: assert.AnError}}
	assert.Equal(t, -1, Best(results))
}
