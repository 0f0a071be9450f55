package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/archetype-balancer/internal/consensus"
	"github.com/KirkDiggler/archetype-balancer/internal/entities"
	dnderr "github.com/KirkDiggler/archetype-balancer/internal/errors"
	"github.com/KirkDiggler/archetype-balancer/internal/uuid"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	hotfixColor = color.New(color.FgYellow)
)

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "balancer",
		Short: "Archetype balance simulator",
		Long: `Proposes a new class archetype and asks a consensus routine whether it
sits in harmony with the existing class roster.

Without a subcommand the built-in demo runs: eight classes at [8, 8, 8]
and the Stormweaver archetype {offensive: 9, restorative: 7, diplomatic: 8}.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Log wiring and balance events to stderr")
	flags.StringVar(&a.opts.routine, "consensus", consensus.RoutineValence, "Consensus routine: valence, council or remote")
	flags.Float64Var(&a.opts.threshold, "threshold", consensus.DefaultJoyThreshold, "Joy threshold in (0, 1]")
	flags.StringVar(&a.opts.consensusURL, "consensus-url", "", "Endpoint for the remote consensus routine")
	flags.IntVar(&a.opts.hotfixRounds, "hotfix-rounds", 0, "Nudge rounds to try when balance fails")
	flags.Float64Var(&a.opts.hotfixRate, "hotfix-rate", 0.5, "Fraction of the distance to the roster centroid covered per round")
	flags.StringVarP(&a.opts.rosterFile, "roster", "r", "", "YAML roster file that seeds an empty class store for propose")

	rootCmd.AddCommand(
		newProposeCmd(a),
		newRosterCmd(a),
		newClassesCmd(a),
	)

	return rootCmd
}

func newProposeCmd(a *app) *cobra.Command {
	var (
		inputFile string
		input     entities.ArchetypeInput
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose an archetype and check its balance",
		Example: `  balancer propose --name Stormweaver --offensive 9 --restorative 7 --diplomatic 8
  balancer propose --input stormweaver.yaml --hotfix-rounds 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proposal := &input
			if inputFile != "" {
				parsed, err := readArchetypeInput(inputFile)
				if err != nil {
					return err
				}
				proposal = parsed
			} else if !cmd.Flags().Changed("name") {
				return dnderr.InvalidArgument("either --input or --name is required")
			} else {
				for _, theme := range entities.ThemeKeys {
					if !cmd.Flags().Changed(theme) {
						return entities.MissingInputKey("themes." + theme)
					}
				}
			}

			return a.propose(cmd.Context(), proposal)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "YAML or JSON archetype file")
	cmd.Flags().StringVar(&input.Name, "name", "", "Archetype name")
	cmd.Flags().Float64Var(&input.Themes.Offensive, "offensive", 0, "Offensive theme strength")
	cmd.Flags().Float64Var(&input.Themes.Restorative, "restorative", 0, "Restorative theme strength")
	cmd.Flags().Float64Var(&input.Themes.Diplomatic, "diplomatic", 0, "Diplomatic theme strength")
	cmd.MarkFlagsMutuallyExclusive("input", "name")

	return cmd
}

func newRosterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Show the roster file (or the demo roster) as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := a.loadRoster()
			if err != nil {
				return err
			}

			source := "demo roster"
			if a.cfg.RosterFile != "" {
				source = a.cfg.RosterFile
			}
			titleColor.Fprintf(a.out, "Classes from %s\n", source)
			renderClasses(a.out, roster)
			return nil
		},
	}
}

func newClassesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Manage the stored class roster",
	}

	var (
		id    string
		name  string
		power string
	)
	addCmd := &cobra.Command{
		Use:     "add",
		Short:   "Store a class",
		Example: `  balancer classes add --name Warden --power "[8, 8, 8]"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vector, err := entities.ParsePowerVector(power)
			if err != nil {
				return err
			}

			if id == "" {
				id = uuid.NewGoogleUUIDGenerator().New()
			}
			class := &entities.ClassDefinition{ID: id, Name: name, PowerVector: vector}
			if err := a.provider.ClassRepository.Create(cmd.Context(), class); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Stored %s (%s) with power vector %s\n", class.Name, class.ID, class.PowerVector)
			return nil
		},
	}
	addCmd.Flags().StringVar(&id, "id", "", "Class ID (generated when empty)")
	addCmd.Flags().StringVar(&name, "name", "", "Class name")
	addCmd.Flags().StringVar(&power, "power", "", `Power vector, e.g. "[8, 8, 8]"`)
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("power")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored classes in roster order",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := a.provider.ClassRepository.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(roster) == 0 {
				fmt.Fprintln(a.out, "No classes stored")
				return nil
			}
			renderClasses(a.out, roster)
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a stored class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.provider.ClassRepository.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd)
	return cmd
}

func renderClasses(w io.Writer, roster []*entities.ClassDefinition) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"ID", "Name", "Offensive", "Restorative", "Diplomatic", "Total"}),
	)

	vectors := make([]entities.PowerVector, 0, len(roster))
	for _, class := range roster {
		vectors = append(vectors, class.PowerVector)
		table.Append(powerRow(class.ID, class.Name, class.PowerVector))
	}
	if len(vectors) > 0 {
		table.Append(powerRow("", "centroid", entities.Centroid(vectors...)))
	}

	table.Render()
}

func powerRow(id, name string, p entities.PowerVector) []string {
	return []string{
		id,
		name,
		formatPower(p[entities.PowerOffensive]),
		formatPower(p[entities.PowerRestorative]),
		formatPower(p[entities.PowerDiplomatic]),
		formatPower(p.Sum()),
	}
}

func formatPower(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
