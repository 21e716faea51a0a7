package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/FilmCut/internal/engine"
	"github.com/piwi3910/FilmCut/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconBest    = "★"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// mm formats a length in millimetres without trailing zeros.
func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// printStats prints the headline figures of a packing on one line.
func printStats(result model.PackingResult, cached bool) {
	status, style := "fresh", styleComputed
	if cached {
		status, style = "cached", styleCached
	}
	parts := []string{
		fmt.Sprintf("%d pieces", len(result.Placements)),
		fmt.Sprintf("%d bins", len(result.Bins)),
		fmt.Sprintf("%s mm used", mm(result.UsedLength)),
		fmt.Sprintf("%.2f%% waste", result.WastePercentage),
	}
	line := "  "
	for _, part := range parts {
		line += StyleDim.Render(part) + StyleDim.Render(" · ")
	}
	fmt.Println(line + style.Render(status))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// placementTable renders one row per placement, in placement order.
func placementTable(result model.PackingResult) string {
	t := newTable("Bin", "Piece", "Label", "X", "Y", "W", "H", "Rot")
	for _, p := range result.Placements {
		rot := ""
		if p.Rotated {
			rot = "↻"
		}
		if p.Pinned {
			rot += " pinned"
		}
		t.Row(strconv.Itoa(p.BinIndex+1), p.InstanceID, p.Label, mm(p.X), mm(p.Y), mm(p.Width), mm(p.Height), rot)
	}
	return t.Render()
}

func piecesTable(pieces []model.PieceSpec) string {
	t := newTable("#", "Width", "Height", "Qty", "Label")
	for i, p := range pieces {
		t.Row(strconv.Itoa(i+1), mm(p.Width), mm(p.Height), strconv.Itoa(p.EffectiveQuantity()), p.Label)
	}
	return t.Render()
}

func comparisonTable(results []engine.ComparisonResult, best int) string {
	t := newTable("", "Scenario", "Width", "Bins", "Used (mm)", "Waste %")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = iconBest
		}
		if r.Err != nil {
			t.Row(mark, r.Scenario.Name, mm(r.Scenario.Options.StripWidth), "-", "-", r.Error)
			continue
		}
		t.Row(mark, r.Scenario.Name, mm(r.Scenario.Options.StripWidth),
			strconv.Itoa(r.BinsUsed), mm(r.UsedLength), fmt.Sprintf("%.2f", r.WastePercentage))
	}
	return t.Render()
}
