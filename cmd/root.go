package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	dashboardcmd "github.com/Alijeyrad/glycare/cmd/dashboard"
	httpcmd "github.com/Alijeyrad/glycare/cmd/http"
	patientscmd "github.com/Alijeyrad/glycare/cmd/patients"
	planscmd "github.com/Alijeyrad/glycare/cmd/plans"
	recordscmd "github.com/Alijeyrad/glycare/cmd/records"
	systemcmd "github.com/Alijeyrad/glycare/cmd/system"
)

var (
	cfgFile string
	role    string
	actor   string
	showID  bool
)

var rootCmd = &cobra.Command{
	Use:   "glycare",
	Short: "Glycare keeps doctors and patients in sync on diabetes care records.",
	Long: `Glycare tracks blood sugar, insulin, exercise and diet plans, and symptoms
for patients and the doctors who follow them. It ships the records API
server and a command-line client for it.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, cmdutil.FlagConfig, "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&role, cmdutil.FlagRole, "", "session role (doctor or patient), overrides session.role")
	rootCmd.PersistentFlags().StringVar(&actor, cmdutil.FlagActor, "", "session actor id, overrides session.actor_id")
	rootCmd.PersistentFlags().BoolVar(&showID, cmdutil.FlagShowID, false, "show record ids in tables")

	// Server side.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())

	// Client side.
	rootCmd.AddCommand(patientscmd.NewPatientsCommand())
	rootCmd.AddCommand(recordscmd.NewRecordsCommand())
	rootCmd.AddCommand(planscmd.NewPlansCommand())
	rootCmd.AddCommand(dashboardcmd.NewDashboardCommand())
}
