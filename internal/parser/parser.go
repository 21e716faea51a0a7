// Package parser turns free-form text into piece specifications.
//
// Each non-empty line (lines are separated by newlines or commas) describes
// one piece:
//
//	500x400x3          width 500, height 400, quantity 3
//	500x400 x3 창문틀    same, labelled
//	500 × 400 *2 door  "×" and "*" are accepted as separators
//	500x400            quantity defaults to 1
//
// Lines are parsed independently. A bad line is reported with its 1-based
// number and does not stop the remaining lines from being parsed.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/FilmCut/internal/model"
)

// Error messages reported per line.
const (
	MsgAllPositive   = "width, height and quantity must be greater than 0"
	MsgSizePositive  = "width and height must be greater than 0"
	MsgQtyPositive   = "quantity must be greater than 0"
	MsgInvalidFormat = "format is invalid, expected e.g. 500x400"
)

var (
	// W x H x Q with nothing after it.
	fullPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+)$`)
	// W x H, an optional "x Q" or "* Q" suffix and an optional label.
	labelPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)(?:\s*[xX×*]\s*(\d+))?\s*(.*)$`)
)

// LineError describes why a single line could not be parsed.
type LineError struct {
	LineNumber int    `json:"line_number"`
	Message    string `json:"message"`
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineNumber, e.Message)
}

// Result holds the pieces parsed from the input and the errors of every
// line that failed.
type Result struct {
	Pieces []model.PieceSpec `json:"pieces"`
	Errors []LineError       `json:"errors"`
}

// Success reports whether every line parsed.
func (r Result) Success() bool {
	return len(r.Errors) == 0
}

// Err returns the line errors joined into one error, or nil.
func (r Result) Err() error {
	if r.Success() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%d invalid line(s): %s", len(r.Errors), strings.Join(msgs, "; "))
}

// Lines splits text on newlines and commas and returns the trimmed,
// non-empty lines in order.
func Lines(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ','
	})
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// Parse parses text into piece specs. It never fails as a whole; check
// Result.Success or Result.Errors.
func Parse(text string) Result {
	res := Result{
		Pieces: []model.PieceSpec{},
		Errors: []LineError{},
	}
	for i, line := range Lines(text) {
		p, msg := ParseLine(line)
		if msg != "" {
			res.Errors = append(res.Errors, LineError{LineNumber: i + 1, Message: msg})
			continue
		}
		res.Pieces = append(res.Pieces, p)
	}
	return res
}

// ParseLine parses a single trimmed line. On failure the returned message
// is non-empty and the piece is zero.
func ParseLine(line string) (model.PieceSpec, string) {
	if m := fullPattern.FindStringSubmatch(line); m != nil {
		w, h, errW, errH := parseSize(m[1], m[2])
		q, errQ := strconv.Atoi(m[3])
		if errW != nil || errH != nil || errQ != nil {
			return model.PieceSpec{}, MsgInvalidFormat
		}
		if w <= 0 || h <= 0 || q <= 0 {
			return model.PieceSpec{}, MsgAllPositive
		}
		return model.NewPieceSpec("", w, h, q), ""
	}

	m := labelPattern.FindStringSubmatch(line)
	if m == nil {
		return model.PieceSpec{}, MsgInvalidFormat
	}
	w, h, errW, errH := parseSize(m[1], m[2])
	if errW != nil || errH != nil {
		return model.PieceSpec{}, MsgInvalidFormat
	}
	if w <= 0 || h <= 0 {
		return model.PieceSpec{}, MsgSizePositive
	}
	q := 1
	if m[3] != "" {
		var err error
		if q, err = strconv.Atoi(m[3]); err != nil {
			return model.PieceSpec{}, MsgInvalidFormat
		}
		if q <= 0 {
			return model.PieceSpec{}, MsgQtyPositive
		}
	}
	return model.NewPieceSpec(strings.TrimSpace(m[4]), w, h, q), ""
}

func parseSize(ws, hs string) (w, h float64, errW, errH error) {
	w, errW = strconv.ParseFloat(ws, 64)
	h, errH = strconv.ParseFloat(hs, 64)
	return w, h, errW, errH
}

// Format renders pieces back into the line grammar, one piece per line.
// The quantity is always written so a label starting with "x" and digits
// is not mistaken for a quantity when parsed again.
func Format(pieces []model.PieceSpec) string {
	var b strings.Builder
	for _, p := range pieces {
		b.WriteString(FormatLine(p))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatLine renders a single piece as "WxH xQ label".
func FormatLine(p model.PieceSpec) string {
	line := fmt.Sprintf("%sx%s x%d", formatNumber(p.Width), formatNumber(p.Height), p.EffectiveQuantity())
	if label := strings.TrimSpace(p.Label); label != "" {
		line += " " + label
	}
	return line
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
