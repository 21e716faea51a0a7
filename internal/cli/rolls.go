package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/project"
)

// rollsCommand creates the roll catalog management command.
func (c *CLI) rollsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rolls",
		Short: "Manage the catalog of film rolls in stock",
	}
	cmd.AddCommand(c.rollsListCommand())
	cmd.AddCommand(c.rollsAddCommand())
	cmd.AddCommand(c.rollsRemoveCommand())
	cmd.AddCommand(c.rollsImportCommand())
	return cmd
}

func (c *CLI) rollsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog rolls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			t := newTable("ID", "Name", "Width", "Length", "Price/m")
			for _, r := range rolls.Rolls {
				price := "-"
				if r.PricePerMeter > 0 {
					price = fmt.Sprintf("%.2f", r.PricePerMeter)
				}
				t.Row(r.ID, r.Name, mm(r.Width), mm(r.Length), price)
			}
			fmt.Println(t.Render())
			printDetail("Catalog: %s", c.rollCatalogPath())
			return nil
		},
	}
}

func (c *CLI) rollsAddCommand() *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "add <name> <width> <length>",
		Short: "Add a roll to the catalog",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.ParseFloat(args[1], 64)
			if err != nil || width <= 0 {
				return fmt.Errorf("invalid width %q", args[1])
			}
			length, err := strconv.ParseFloat(args[2], 64)
			if err != nil || length <= 0 {
				return fmt.Errorf("invalid length %q", args[2])
			}
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			roll := model.NewFilmRoll(args[0], width, length, price)
			rolls.Add(roll)
			if err := project.SaveRollCatalog(c.rollCatalogPath(), rolls); err != nil {
				return err
			}
			printSuccess("Added %s (%s)", roll.Name, roll.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "price per metre")
	return cmd
}

func (c *CLI) rollsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Remove a roll from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			roll := rolls.Find(args[0])
			if roll == nil {
				return fmt.Errorf("unknown roll %q", args[0])
			}
			name := roll.Name
			rolls.Remove(roll.ID)
			if err := project.SaveRollCatalog(c.rollCatalogPath(), rolls); err != nil {
				return err
			}
			printSuccess("Removed %s", name)
			return nil
		},
	}
}

func (c *CLI) rollsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge rolls from another catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			before := len(rolls.Rolls)
			merged, err := project.ImportRollCatalog(args[0], rolls)
			if err != nil {
				return err
			}
			if err := project.SaveRollCatalog(c.rollCatalogPath(), merged); err != nil {
				return err
			}
			printSuccess("Imported %d roll(s)", len(merged.Rolls)-before)
			return nil
		},
	}
}
