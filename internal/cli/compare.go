package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/engine"
	"github.com/piwi3910/FilmCut/internal/model"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var flags packFlags

	cmd := &cobra.Command{
		Use:   "compare <file|->",
		Short: "Pack the same pieces with rotation toggled and on every catalog roll",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			opts, _, err := resolveOptions(cmd, flags, cfg, rolls)
			if err != nil {
				return err
			}
			pieces, err := c.loadPieces(args[0])
			if err != nil {
				return err
			}

			results := c.compare(pieces, opts, rolls)
			best := engine.Best(results)
			fmt.Println(comparisonTable(results, best))
			if best < 0 {
				return fmt.Errorf("no scenario can place every piece")
			}
			printSuccess("Best: %s", results[best].Scenario.Name)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) compare(pieces []model.PieceSpec, opts model.PackingOptions, rolls model.RollCatalog) []engine.ComparisonResult {
	scenarios := engine.BuildDefaultScenarios(opts, rolls.Rolls)
	prog := newProgress(c.Logger)
	results := engine.CompareScenarios(scenarios, model.Expand(pieces))
	prog.done(fmt.Sprintf("Compared %d scenarios", len(scenarios)))
	return results
}
