package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/parser"
)

// parseCommand creates the parse command, which checks a piece list
// without packing it.
func (c *CLI) parseCommand() *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Check a bulk piece list and report bad lines",
		Long: `Check a bulk piece list and report bad lines.

Every line that fails is reported with its line number; the remaining lines
are still parsed. With --normalize the accepted pieces are printed back in
canonical "WxH xQ label" form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.readText(args[0])
			if err != nil {
				return err
			}
			res := parser.Parse(text)

			if normalize {
				fmt.Print(parser.Format(res.Pieces))
			} else if len(res.Pieces) > 0 {
				fmt.Println(piecesTable(res.Pieces))
			}
			for _, e := range res.Errors {
				printError("%s", e)
			}
			if !res.Success() {
				return res.Err()
			}
			if !normalize {
				printSuccess("%d piece line(s), %d pieces in total", len(res.Pieces), model.TotalQuantity(res.Pieces))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&normalize, "normalize", false, "print the accepted pieces in canonical form")
	return cmd
}
