package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/decider/core"
	"github.com/huangsam/decider/internal/outwriter"
	"github.com/huangsam/decider/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showCmd prints the matrix grid.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the decision matrix",
	Long: `Print the decision matrix as a grid with one row per option and one column per criterion.

Column headers carry the criterion position and weight. Ratings that were never
set explicitly are marked with an asterisk.`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return outwriter.NewOutWriter().WriteMatrix(session.View(), cfg)
	},
}

// optionCmd groups option management.
var optionCmd = &cobra.Command{
	Use:   "option",
	Short: "Add, remove or rename options",
	Long: `Manage the options being compared.

Options are referenced by id or by their 1-based position in the grid.

Examples:
  decider option add "Laptop A"
  decider option rename 1 "Laptop B"
  decider option remove 2`,
}

var optionAddCmd = &cobra.Command{
	Use:     "add [name]",
	Short:   "Add an option; unrated cells score 0 until rated",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sessionSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := session.AddOption(argOrEmpty(args, 0))
		if err != nil {
			return err
		}
		cmd.Printf("Added option %s\n", id)
		return nil
	},
}

var optionRemoveCmd = &cobra.Command{
	Use:     "remove <option>",
	Short:   "Remove an option and its ratings",
	Args:    cobra.ExactArgs(1),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := resolveOption(session.Matrix(), args[0])
		if err != nil {
			return err
		}
		return session.RemoveOption(id)
	},
}

var optionRenameCmd = &cobra.Command{
	Use:     "rename <option> <name>",
	Short:   "Rename an option",
	Args:    cobra.ExactArgs(2),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := resolveOption(session.Matrix(), args[0])
		if err != nil {
			return err
		}
		_, err = session.UpdateOptionName(id, args[1])
		return err
	},
}

// criterionCmd groups criterion management.
var criterionCmd = &cobra.Command{
	Use:   "criterion",
	Short: "Add, remove, rename or reweigh criteria",
	Long: `Manage the weighted criteria options are rated on.

Criteria are referenced by id or by their 1-based position in the grid.
Weights that are not numbers are stored as 0.

Examples:
  decider criterion add Price 8
  decider criterion weight 1 3
  decider criterion remove 2`,
}

var criterionAddCmd = &cobra.Command{
	Use:     "add [name] [weight]",
	Short:   "Add a criterion, weighted 5 unless a weight is given",
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sessionSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		weight := schema.DefaultWeight
		if len(args) == 2 {
			weight = core.CoerceNumber(args[1])
		}
		id, err := session.AddCriterion(argOrEmpty(args, 0), weight)
		if err != nil {
			return err
		}
		cmd.Printf("Added criterion %s\n", id)
		return nil
	},
}

var criterionRemoveCmd = &cobra.Command{
	Use:     "remove <criterion>",
	Short:   "Remove a criterion with its weight and ratings",
	Args:    cobra.ExactArgs(1),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := resolveCriterion(session.Matrix(), args[0])
		if err != nil {
			return err
		}
		return session.RemoveCriterion(id)
	},
}

var criterionRenameCmd = &cobra.Command{
	Use:     "rename <criterion> <name>",
	Short:   "Rename a criterion",
	Args:    cobra.ExactArgs(2),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := resolveCriterion(session.Matrix(), args[0])
		if err != nil {
			return err
		}
		_, err = session.UpdateCriterionName(id, args[1])
		return err
	},
}

var criterionWeightCmd = &cobra.Command{
	Use:     "weight <criterion> <value>",
	Short:   "Set the weight of a criterion",
	Args:    cobra.ExactArgs(2),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := resolveCriterion(session.Matrix(), args[0])
		if err != nil {
			return err
		}
		return session.UpdateWeight(id, args[1])
	},
}

// rateCmd sets one rating.
var rateCmd = &cobra.Command{
	Use:   "rate <option> <criterion> <value>",
	Short: "Rate an option on a criterion",
	Long: `Set how an option scores on a criterion. Ratings are usually 1 to 10,
but any number is accepted and values that are not numbers are stored as 0.

Examples:
  decider rate 1 2 7
  decider rate id_2b7c0e9a41f3 2 9.5`,
	Args:    cobra.ExactArgs(3),
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		m := session.Matrix()
		optionID, err := resolveOption(m, args[0])
		if err != nil {
			return err
		}
		criterionID, err := resolveCriterion(m, args[1])
		if err != nil {
			return err
		}
		return session.UpdateRating(optionID, criterionID, args[2])
	},
}

// resetCmd replaces the matrix with the starter matrix.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the matrix and start over with the defaults",
	Long: `Replace the matrix with two default options and two default criteria.

This cannot be undone unless you kept a share link. Pass --yes to confirm.`,
	Args:    cobra.NoArgs,
	PreRunE: sessionSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !viper.GetBool("yes") {
			return errors.New("refusing to reset without --yes")
		}
		return session.Reset()
	},
}

// resolveOption maps an option id or 1-based position to its id.
func resolveOption(m *core.Matrix, ref string) (string, error) {
	idx, ok := m.OptionIndex(ref)
	if !ok {
		return "", fmt.Errorf("unknown option %q (use an id or a position from 1 to %d)", ref, len(m.Options()))
	}
	return m.Options()[idx].ID, nil
}

// resolveCriterion maps a criterion id or position to its id.
func resolveCriterion(m *core.Matrix, ref string) (string, error) {
	idx, ok := m.CriterionIndex(ref)
	if !ok {
		return "", fmt.Errorf("unknown criterion %q (use an id or a position from 1 to %d)", ref, len(m.Criteria()))
	}
	return m.Criteria()[idx].ID, nil
}

func argOrEmpty(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
