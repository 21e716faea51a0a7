package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/project"
)

// projectCommand creates the project command. A project file keeps the
// pieces, the roll and the last cut plan together, so the plan is shown
// again without repacking until the pieces change.
func (c *CLI) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and manage saved jobs",
	}
	cmd.AddCommand(c.projectNewCommand())
	cmd.AddCommand(c.projectShowCommand())
	cmd.AddCommand(c.projectRepackCommand())
	cmd.AddCommand(c.projectCompleteCommand())
	cmd.AddCommand(c.projectRecentCommand())
	return cmd
}

func (c *CLI) projectNewCommand() *cobra.Command {
	var (
		flags packFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "new <project.json> <pieces-file>",
		Short: "Create a project from a piece list and pack it",
		Args:  cobra.ExactArgs(2),
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
			pieces, err := c.loadPieces(args[1])
			if err != nil {
				return err
			}

			if name == "" {
				name = args[0]
			}
			var r model.FilmRoll
			if roll != nil {
				r = *roll
			}
			p := model.NewProject(name, r)
			p.Options = opts
			p.Pieces = pieces

			if _, err := project.Repack(&p, true); err != nil {
				return err
			}
			if err := c.saveProject(args[0], p, &cfg); err != nil {
				return err
			}
			printPackResult(*p.Result, p.Options, roll, false)
			printFile(args[0])
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "project name (default: the file name)")
	return cmd
}

func (c *CLI) projectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project.json>",
		Short: "Print the stored cut plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			printKeyValue("Project", p.Name)
			printKeyValue("Pieces", fmt.Sprint(model.TotalQuantity(p.Pieces)))
			printKeyValue("Completed", fmt.Sprint(len(p.Completed)))
			if p.Result == nil {
				printWarning("No cut plan yet, run: filmcut project repack %s", args[0])
				return nil
			}
			if p.IsStale() {
				printWarning("Pieces changed since the plan was made, run: filmcut project repack %s", args[0])
			}
			printPackResult(*p.Result, p.Options, rollOrNil(p.Roll), true)
			return nil
		},
	}
}

func (c *CLI) projectRepackCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "repack <project.json>",
		Short: "Repack the project if its pieces or options changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			changed, err := project.Repack(&p, force)
			if err != nil {
				return err
			}
			if !changed {
				printInfo("Cut plan is up to date")
				return nil
			}
			if err := c.saveProject(args[0], p, &cfg); err != nil {
				return err
			}
			printPackResult(*p.Result, p.Options, rollOrNil(p.Roll), false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "repack even if nothing changed")
	return cmd
}

func (c *CLI) projectCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <project.json> <instance-id>...",
		Short: "Mark pieces as cut so repacking with pinning keeps them in place",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p, err := project.LoadProject(args[0])
			if err != nil {
				return err
			}
			for _, id := range args[1:] {
				if err := p.MarkComplete(id); err != nil {
					return err
				}
			}
			if !p.Options.PinFixed {
				p.Options.PinFixed = true
				printInfo("Pinning enabled for this project")
			}
			if err := c.saveProject(args[0], p, &cfg); err != nil {
				return err
			}
			printSuccess("Marked %d piece(s) complete", len(args)-1)
			return nil
		},
	}
}

func (c *CLI) projectRecentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.RecentProjects) == 0 {
				printInfo("No recent projects")
				return nil
			}
			for _, path := range cfg.RecentProjects {
				printFile(path)
			}
			return nil
		},
	}
}

// saveProject writes the project and records it in the recent list.
func (c *CLI) saveProject(path string, p model.Project, cfg *model.AppConfig) error {
	if err := project.SaveProject(path, p); err != nil {
		return err
	}
	cfg.AddRecentProject(path)
	if err := project.SaveAppConfig(c.configPath, *cfg); err != nil {
		c.Logger.Warn("could not update recent projects", "err", err)
	}
	return nil
}

func rollOrNil(r model.FilmRoll) *model.FilmRoll {
	if r.Width <= 0 {
		return nil
	}
	return &r
}
