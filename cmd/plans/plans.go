package plans

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/records"
	"github.com/Alijeyrad/glycare/internal/remote"
	"github.com/Alijeyrad/glycare/internal/selector"
)

func NewPlansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse exercise and diet plans",
	}

	cmd.AddCommand(newListCommand())

	return cmd
}

type planSet struct {
	title  string
	source func(*remote.Client) remote.Source[domain.PlanAssignment]
	kind   domain.Kind[domain.PlanAssignment]
}

var planSets = map[string]planSet{
	"exercise": {title: "Exercise plans", kind: domain.Exercise, source: func(c *remote.Client) remote.Source[domain.PlanAssignment] {
		return c.Exercise()
	}},
	"diet": {title: "Diet plans", kind: domain.Diet, source: func(c *remote.Client) remote.Source[domain.PlanAssignment] {
		return c.Diet()
	}},
}

func newListCommand() *cobra.Command {
	var (
		patient  string
		planType string
		query    string
		selected string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans with their status glyphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := selectTypes(planType)
			if err != nil {
				return err
			}

			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			scope, err := cmdutil.ResolveScope(env.Session, patient)
			if err != nil {
				return err
			}

			for _, t := range types {
				set := planSets[t]
				c := records.New(set.source(env.Client), set.kind, records.WithLogger[domain.PlanAssignment](env.Logger))
				if err := c.Select(cmd.Context(), scope); err != nil {
					return err
				}

				ps := selector.NewPlanSelector(selector.PlanHandlers{})
				if err := ps.SetItems(c.Snapshot().Records); err != nil {
					return err
				}
				if selected != "" {
					// The id may belong to the other plan type.
					_, _ = ps.Click(domain.ID(selected))
				}
				env.Printer.Plans(set.title, ps.Rows(query))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "patient id")
	cmd.Flags().StringVar(&planType, "type", "", "exercise or diet (default both)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive filter on name or status")
	cmd.Flags().StringVar(&selected, "select", "", "plan id to mark as selected")

	return cmd
}

func selectTypes(planType string) ([]string, error) {
	switch t := strings.ToLower(strings.TrimSpace(planType)); t {
	case "":
		return []string{"exercise", "diet"}, nil
	case "exercise", "diet":
		return []string{t}, nil
	default:
		return nil, fmt.Errorf("%w: unknown plan type %q (exercise or diet)", domain.ErrValidation, planType)
	}
}
