// Package cli implements the adminctl commands, wiring the session layer,
// the transport gateway and the domain clients together.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/services"
	"github.com/spec-kit/admin-console/internal/session"
	"github.com/spec-kit/admin-console/internal/transport"
)

// app carries the shared wiring every command works against.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	store     session.Store
	session   *session.Service
	users     *services.Users
	employees *services.Employees
	subs      *services.Subscriptions
	dashboard *services.Dashboard
	cep       *services.CEP
}

// NewRootCommand builds the adminctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Console client for the admin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.shutdown()
		},
	}

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.registerCommand(),
		a.forgotPasswordCommand(),
		a.whoamiCommand(),
		a.statusCommand(),
		a.usersCommand(),
		a.employeesCommand(),
		a.subscriptionsCommand(),
		a.dashboardCommand(),
		a.cepCommand(),
		a.watchCommand(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		return err
	}

	api := transport.NewClient(cfg.API, session.NewCredentials(store), logger)

	a.cfg = cfg
	a.logger = logger
	a.store = store
	a.session = session.NewService(api, store, logger)
	a.users = services.NewUsers(api)
	a.employees = services.NewEmployees(api)
	a.subs = services.NewSubscriptions(api)
	a.dashboard = services.NewDashboard(api)
	a.cep = services.NewCEP(cfg.API)
	return nil
}

func (a *app) shutdown() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newStore(cfg *config.Config, logger *zap.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendFile:
		return session.NewFileStore(cfg.Session.FilePath, logger), nil
	case config.SessionBackendRedis:
		return session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger), nil
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
