package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runelauncher/jxctl/pkg/jxctl/store"
)

func NewLogoutCommand() *cobra.Command {
	var sessionName string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session and its accounts cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			sessions := store.New(store.WithLogger(rt.Logger()))
			if err := sessions.ClearSession(store.SessionKey(sessionName)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Logged out")
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionName, "session-name", "s", "", "Clear the session stored under a name")

	return cmd
}
