package records

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/selector"
)

func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List and change a patient's clinical records",
		Long: fmt.Sprintf(`List and change a patient's clinical records.

Record kinds: %s.

Doctors name the patient with --patient. Patient sessions always work on
their own records.`, strings.Join(kindNames(), ", ")),
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newAddCommand())
	cmd.AddCommand(newEditCommand())
	cmd.AddCommand(newDeleteCommand())

	return cmd
}

// target resolves the kind argument and the scope for a records command.
func target(cmd *cobra.Command, kindArg, patient string) (*cmdutil.Env, ops, domain.ID, error) {
	o, err := lookup(kindArg)
	if err != nil {
		return nil, ops{}, "", err
	}
	env, err := cmdutil.Load(cmd)
	if err != nil {
		return nil, ops{}, "", err
	}
	scope, err := cmdutil.ResolveScope(env.Session, patient)
	if err != nil {
		return nil, ops{}, "", err
	}
	return env, o, scope, nil
}

func newListCommand() *cobra.Command {
	var patient string

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List records, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, o, scope, err := target(cmd, args[0], patient)
			if err != nil {
				return err
			}
			return o.list(cmd.Context(), env, scope)
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "patient id")

	return cmd
}

func newAddCommand() *cobra.Command {
	var (
		patient string
		f       fields
	)

	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add a record and show the refreshed collection",
		Example: `  glycare records add blood-sugar --patient p1 --value 142 --at "2024-03-01 08:00"
  glycare records add insulin-logs --date 2024-03-01 --time 07:30 --dosage 8
  glycare records add exercise-plans --patient p1 --name "Walk" --status active --start 2024-03-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, o, scope, err := target(cmd, args[0], patient)
			if err != nil {
				return err
			}
			return o.add(cmd.Context(), env, scope, cmd.Flags(), &f)
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "patient id")
	f.register(cmd.Flags())

	return cmd
}

func newEditCommand() *cobra.Command {
	var (
		patient string
		id      string
		f       fields
	)

	cmd := &cobra.Command{
		Use:   "edit <kind>",
		Short: "Change the given fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, o, scope, err := target(cmd, args[0], patient)
			if err != nil {
				return err
			}
			return o.edit(cmd.Context(), env, scope, domain.ID(id), cmd.Flags(), &f)
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "patient id")
	cmd.Flags().StringVar(&id, "id", "", "record id")
	_ = cmd.MarkFlagRequired("id")
	f.register(cmd.Flags())

	return cmd
}

func newDeleteCommand() *cobra.Command {
	var (
		patient string
		id      string
	)

	cmd := &cobra.Command{
		Use:   "delete <kind>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, o, scope, err := target(cmd, args[0], patient)
			if err != nil {
				return err
			}
			return o.remove(cmd.Context(), env, scope, domain.ID(id))
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "patient id")
	cmd.Flags().StringVar(&id, "id", "", "record id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func planView(ps []domain.PlanAssignment) (selector.PlanView, error) {
	sel := selector.NewPlanSelector(selector.PlanHandlers{})
	if err := sel.SetItems(ps); err != nil {
		return selector.PlanView{}, fmt.Errorf("plans from server: %w", err)
	}
	return sel.Rows(""), nil
}
