package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/importer"
	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/parser"
)

// loadPieces reads pieces from path. "-" reads bulk text from stdin; CSV,
// Excel and DXF files go through the importers; anything else is bulk text.
// Warnings are logged, while any line or row error fails the load. Pieces
// are numbered p1, p2, ... in input order so the same file always expands
// to the same instance IDs.
func (c *CLI) loadPieces(path string) ([]model.PieceSpec, error) {
	pieces, err := c.readPieces(path)
	if err != nil {
		return nil, err
	}
	pieces = model.NumberPieces(pieces)
	if err := model.ValidatePieceSpecs(pieces); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pieces, nil
}

func (c *CLI) readPieces(path string) ([]model.PieceSpec, error) {
	if path != "-" && importer.Supported(path) {
		res := importer.ImportFile(path)
		for _, w := range res.Warnings {
			c.Logger.Debug(w, "file", path)
		}
		if err := res.Err(); err != nil {
			for _, e := range res.Errors {
				printError("%s", e)
			}
			return nil, fmt.Errorf("import %s: %w", path, err)
		}
		return res.Pieces, nil
	}

	text, err := c.readText(path)
	if err != nil {
		return nil, err
	}
	res := parser.Parse(text)
	if !res.Success() {
		for _, e := range res.Errors {
			printError("%s", e)
		}
		return nil, fmt.Errorf("parse %s: %w", path, res.Err())
	}
	return res.Pieces, nil
}

func (c *CLI) readText(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// packFlags are the option overrides shared by pack, compare and project.
type packFlags struct {
	width      float64
	length     float64
	padding    float64
	noRotation bool
	pin        bool
	roll       string
}

func (f *packFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.width, "width", "w", 0, "roll width in mm (overrides the roll and config)")
	cmd.Flags().Float64VarP(&f.length, "length", "l", 0, "maximum strip length in mm")
	cmd.Flags().Float64VarP(&f.padding, "padding", "p", 0, "gap after each piece in mm")
	cmd.Flags().BoolVar(&f.noRotation, "no-rotation", false, "never rotate pieces")
	cmd.Flags().BoolVar(&f.pin, "pin", false, "keep completed pieces where they were cut")
	cmd.Flags().StringVarP(&f.roll, "roll", "r", "", "roll from the catalog, by ID or name")
}

// resolveOptions layers the config defaults, the selected roll and the
// flags the user actually set, in that order. The roll is nil when none
// was selected.
func resolveOptions(cmd *cobra.Command, f packFlags, cfg model.AppConfig, rolls model.RollCatalog) (model.PackingOptions, *model.FilmRoll, error) {
	opts := cfg.PackingOptions()

	key := f.roll
	if key == "" {
		key = cfg.DefaultRoll
	}
	var roll *model.FilmRoll
	if key != "" {
		roll = rolls.Find(key)
		if roll == nil {
			return opts, nil, fmt.Errorf("unknown roll %q", key)
		}
		roll.ApplyToOptions(&opts)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.StripWidth = f.width
	}
	if flags.Changed("length") {
		opts.MaxStripLength = f.length
	}
	if flags.Changed("padding") {
		opts.Padding = f.padding
	}
	if flags.Changed("no-rotation") {
		opts.AllowRotation = !f.noRotation
	}
	if flags.Changed("pin") {
		opts.PinFixed = f.pin
	}
	return opts, roll, opts.Validate()
}
