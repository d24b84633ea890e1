package patients

import (
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/selector"
)

func NewPatientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Browse the doctor's patient directory",
	}

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newAddCommand())

	return cmd
}

func newListCommand() *cobra.Command {
	var (
		query    string
		selected string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patients, optionally filtered by name or label",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}

			items, err := env.Client.Patients().List(cmd.Context())
			if err != nil {
				return err
			}

			sel := selector.NewScopeSelector()
			if err := sel.SetItems(items); err != nil {
				return err
			}
			if selected != "" {
				if _, err := sel.Select(domain.ID(selected)); err != nil {
					return err
				}
			}

			env.Printer.Patients(sel.View(query), sel.SelectedID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive filter on name or label")
	cmd.Flags().StringVar(&selected, "select", "", "patient id to mark as selected")

	return cmd
}

func newAddCommand() *cobra.Command {
	var (
		name  string
		label string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a patient to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}

			created, err := env.Client.Patients().Create(cmd.Context(), domain.ScopedEntity{
				DisplayName:    name,
				SecondaryLabel: label,
			})
			if err != nil {
				return err
			}

			env.Printer.Patients(selector.View[domain.ScopedEntity]{Items: []domain.ScopedEntity{created}}, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&label, "label", "", "secondary label, e.g. diabetes type")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
