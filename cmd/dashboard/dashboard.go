package dashboard

import (
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	dash "github.com/Alijeyrad/glycare/internal/dashboard"
)

func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summary statistics for one patient",
	}

	cmd.AddCommand(newShowCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	var patient string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show plan, symptom and blood-sugar counts",
		Long: `Show plan, symptom and blood-sugar counts for a patient.

All four collections are fetched together. If any of them fails the
dashboard is reported unavailable rather than shown with partial numbers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			scope, err := cmdutil.ResolveScope(env.Session, patient)
			if err != nil {
				return err
			}

			svc, err := dash.FromClient(env.Client, env.Logger)
			if err != nil {
				return err
			}
			stats, err := svc.Load(cmd.Context(), scope)
			if err != nil {
				return err
			}

			env.Printer.Dashboard(stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "patient id")

	return cmd
}
