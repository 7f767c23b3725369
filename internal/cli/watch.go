package cli

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/admin-console/internal/authgate"
)

// watchCommand runs the auth gate loop: it prints which surface the shell
// would render and re-prints whenever another process flips the session,
// e.g. a logout in a second terminal.
func (a *app) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the session state until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			gate := authgate.New(a.session, a.store, func(branch authgate.Branch) {
				switch branch {
				case authgate.BranchShell:
					cmd.Println("-> authenticated shell")
				default:
					cmd.Println("-> login screen")
				}
			})
			gate.Start()
			defer gate.Stop()

			<-cmd.Context().Done()
			return nil
		},
	}
}
