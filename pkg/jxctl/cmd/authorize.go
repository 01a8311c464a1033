package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runelauncher/jxctl/pkg/jxctl/auth"
	"github.com/runelauncher/jxctl/pkg/jxctl/client"
	"github.com/runelauncher/jxctl/pkg/jxctl/store"
)

func NewAuthorizeCommand() *cobra.Command {
	var sessionName string

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Log in with your Jagex account",
		Long: "Opens a browser window for the Jagex account login and consent flow\n" +
			"and stores the resulting game session in the OS credential store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			exchanger := client.New(*rt.cfg, client.WithLogger(rt.Logger()))
			sessions := store.New(store.WithLogger(rt.Logger()))
			coordinator, err := auth.NewCoordinator(*rt.cfg, exchanger, sessions, auth.WithLogger(rt.Logger()))
			if err != nil {
				return err
			}
			if err := coordinator.Authorize(cmd.Context(), sessionName); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Authorized. Run 'jxctl ls' to list your characters.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionName, "session-name", "s", "", "Store the session under a name")

	return cmd
}
