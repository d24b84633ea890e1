// Package cmdutil holds the plumbing shared by the client-side commands.
package cmdutil

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/config"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/remote"
	"github.com/Alijeyrad/glycare/internal/session"
	"github.com/Alijeyrad/glycare/pkg/logs"
	"github.com/Alijeyrad/glycare/pkg/printers"
)

// Persistent flag names registered on the root command.
const (
	FlagConfig = "config"
	FlagRole   = "role"
	FlagActor  = "actor"
	FlagShowID = "show-id"
)

// ReadConfig loads the config named by the root --config flag.
func ReadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString(FlagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// Env is everything a client command needs.
type Env struct {
	Config  *config.Config
	Session session.Session
	Client  *remote.Client
	Logger  *slog.Logger
	Printer *printers.PrettyPrint
}

// Load reads the config, applies the --role and --actor overrides, and
// builds the remote client for the resulting session.
func Load(cmd *cobra.Command) (*Env, error) {
	cfg, err := ReadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Root().PersistentFlags()
	if role, _ := flags.GetString(FlagRole); role != "" {
		cfg.Session.Role = role
	}
	if actor, _ := flags.GetString(FlagActor); actor != "" {
		cfg.Session.ActorID = actor
	}
	showID, _ := flags.GetBool(FlagShowID)

	s, err := session.New(cfg.Session.Role, cfg.Session.ActorID)
	if err != nil {
		return nil, fmt.Errorf("invalid session (set session.role/session.actor_id or --role/--actor): %w", err)
	}

	logger := logs.ForCLI(cfg)
	slog.SetDefault(logger)

	client, err := remote.New(remote.FromCentralConfig(cfg.Client), s, logger)
	if err != nil {
		return nil, err
	}

	return &Env{
		Config:  cfg,
		Session: s,
		Client:  client,
		Logger:  logger,
		Printer: printers.New(showID),
	}, nil
}

// ResolveScope picks the patient a command works on. Patient sessions are
// pinned to themselves; doctors must name a patient.
func ResolveScope(s session.Session, patient string) (domain.ID, error) {
	requested := domain.ID(patient)
	if own, ok := s.ImplicitScope(); ok {
		if !requested.IsZero() && requested != own {
			return "", fmt.Errorf("%w: a patient session can only read its own records", domain.ErrForbidden)
		}
		return own, nil
	}
	if requested.IsZero() {
		return "", fmt.Errorf("%w: --patient is required for doctor sessions", domain.ErrValidation)
	}
	return requested, nil
}
