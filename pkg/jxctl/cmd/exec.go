package cmd

import (
	"github.com/spf13/cobra"

	"github.com/runelauncher/jxctl/pkg/jxctl/launch"
	"github.com/runelauncher/jxctl/pkg/jxctl/store"
)

func NewExecCommand() *cobra.Command {
	var (
		sessionName string
		offline     bool
		characterID string
	)

	cmd := &cobra.Command{
		Use:   "exec PROGRAM [ARGS...]",
		Short: "Launch a game client with session credentials",
		Long: "Launches a game client (for example RuneLite) with JX_SESSION_ID,\n" +
			"JX_CHARACTER_ID and JX_DISPLAY_NAME set from the stored session.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			sessions := store.New(store.WithLogger(rt.Logger()))
			sessionKey := store.SessionKey(sessionName)
			session, err := sessions.LoadSession(sessionKey)
			if err != nil {
				return err
			}
			if session == nil {
				return store.ErrSessionNotFound
			}
			accounts, err := listAccounts(cmd.Context(), rt, sessionName, offline, false)
			if err != nil {
				return err
			}
			account, err := launch.FindAccount(accounts, characterID)
			if err != nil {
				return err
			}
			return launch.Exec(session, account, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&sessionName, "session-name", "s", "", "Use the session stored under a name")
	cmd.Flags().BoolVar(&offline, "offline", false, "Resolve the character from the local accounts cache")
	cmd.Flags().StringVarP(&characterID, "character-id", "c", "", "Character ID from 'jxctl ls'")
	_ = cmd.MarkFlagRequired("character-id")

	return cmd
}
