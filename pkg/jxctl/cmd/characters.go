package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
	"github.com/runelauncher/jxctl/pkg/jxctl/output"
	"github.com/runelauncher/jxctl/pkg/jxctl/store"
)

func NewCharactersCommand() *cobra.Command {
	var (
		sessionName string
		offline     bool
		writeCache  bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the characters of the authorized account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			accounts, err := listAccounts(cmd.Context(), rt, sessionName, offline, writeCache)
			if err != nil {
				return err
			}
			if rt.outputFormat == "json" {
				return output.WriteAccountsJSON(rt.Writer(), accounts)
			}
			output.WriteAccountTable(rt.Writer(), accounts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionName, "session-name", "s", "", "Use the session stored under a name")
	cmd.Flags().BoolVar(&offline, "offline", false, "Read the local accounts cache instead of the network")
	cmd.Flags().BoolVar(&writeCache, "write-cache", false, "Store the fetched characters for offline use")

	return cmd
}

// listAccounts implements the offline/write-cache contract: offline mode
// only consults the cache and an absent cache is an empty list; network
// mode requires a stored session and optionally repopulates the cache.
func listAccounts(ctx context.Context, rt *runtimeState, sessionName string, offline, writeCache bool) ([]client.Account, error) {
	sessions := store.New(store.WithLogger(rt.Logger()))
	sessionKey := store.SessionKey(sessionName)

	if offline {
		return sessions.LoadAccounts(sessionKey)
	}

	session, err := sessions.LoadSession(sessionKey)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, store.ErrSessionNotFound
	}
	accounts, err := client.New(*rt.cfg, client.WithLogger(rt.Logger())).ListAccounts(ctx, session.SessionID)
	if err != nil {
		return nil, err
	}
	if writeCache {
		if err := sessions.StoreAccounts(sessionKey, accounts); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}
