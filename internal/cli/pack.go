package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/cache"
	"github.com/piwi3910/FilmCut/internal/engine"
	"github.com/piwi3910/FilmCut/internal/export"
	"github.com/piwi3910/FilmCut/internal/model"
)

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var (
		flags   packFlags
		noCache bool
		jsonOut string
		xlsxOut string
	)

	cmd := &cobra.Command{
		Use:   "pack <file|->",
		Short: "Lay pieces out on a roll and print the cut plan",
		Long: `Lay pieces out on a roll and print the cut plan.

The input is a bulk piece list ("500x400x3 label" per line), or a .csv,
.xlsx or .dxf file. Use "-" to read the list from stdin.

Results are cached, so packing the same list again is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			opts, roll, err := resolveOptions(cmd, flags, cfg, rolls)
			if err != nil {
				return err
			}
			pieces, err := c.loadPieces(args[0])
			if err != nil {
				return err
			}

			store := c.newCache(cmd.Context(), cfg, noCache)
			defer store.Close()

			result, cached, err := c.pack(cmd.Context(), store, cache.TTL(cfg), model.Expand(pieces), opts)
			if err != nil {
				return err
			}

			printPackResult(result, opts, roll, cached)

			if jsonOut != "" {
				if err := writeJSONFile(jsonOut, result); err != nil {
					return err
				}
				printFile(jsonOut)
			}
			if xlsxOut != "" {
				if err := export.WriteCutListXLSX(xlsxOut, result, opts); err != nil {
					return err
				}
				printFile(xlsxOut)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&jsonOut, "json", "", "also write the result as JSON to this file")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write the cut list as an Excel workbook")

	return cmd
}

// pack runs the engine unless the cache already holds the result.
func (c *CLI) pack(ctx context.Context, store cache.Cache, ttl time.Duration, instances []model.RectangleInstance, opts model.PackingOptions) (model.PackingResult, bool, error) {
	key := cache.PackKey(instances, opts)
	if result, ok, err := cache.GetResult(ctx, store, key); err != nil {
		c.Logger.Warn("cache read failed", "err", err)
	} else if ok {
		c.Logger.Debug("using cached result", "key", key[:13])
		return result, true, nil
	}

	prog := newProgress(c.Logger)
	result, err := engine.Pack(instances, opts)
	if err != nil {
		return model.PackingResult{}, false, err
	}
	prog.done(fmt.Sprintf("Packed %d pieces", len(instances)))

	if err := cache.SetResult(ctx, store, key, result, ttl); err != nil {
		c.Logger.Warn("cache write failed", "err", err)
	}
	return result, false, nil
}

func printPackResult(result model.PackingResult, opts model.PackingOptions, roll *model.FilmRoll, cached bool) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Cut plan on a %s mm roll", mm(opts.StripWidth))))
	printStats(result, cached)
	if len(result.Placements) == 0 {
		printInfo("Nothing to cut")
		return
	}
	fmt.Println(placementTable(result))

	printKeyValue("Used length", mm(result.UsedLength)+" mm")
	printKeyValue("Piece area", fmt.Sprintf("%.2f m²", result.TotalPieceArea/1e6))
	printKeyValue("Waste", fmt.Sprintf("%.2f m² (%.2f%%)", result.TotalWasteArea/1e6, result.WastePercentage))

	if roll != nil {
		est := model.EstimateFilm(result, *roll)
		printKeyValue("Roll", roll.Name)
		printKeyValue("Rolls needed", StyleNumber.Render(fmt.Sprint(est.RollsNeeded)))
		if est.EstimatedCost > 0 {
			printKeyValue("Estimated cost", fmt.Sprintf("%.2f (waste %.2f)", est.EstimatedCost, est.CostOfWasteEst))
		}
	}

	remnants := model.DetectAllRemnants(result, opts)
	if len(remnants) > 0 {
		printInfo("%d reusable remnant(s), %.2f m²", len(remnants), model.TotalRemnantArea(remnants)/1e6)
		for _, r := range remnants {
			printDetail("bin %d at (%s, %s): %s x %s mm", r.BinIndex+1, mm(r.X), mm(r.Y), mm(r.Width), mm(r.Height))
		}
	}
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
