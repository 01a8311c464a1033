package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runelauncher/jxctl/pkg/jxctl/desktop"
)

func NewDesktopEntryCommand() *cobra.Command {
	var (
		sessionName string
		name        string
		characterID string
	)

	cmd := &cobra.Command{
		Use:   "create-desktop-entry PROGRAM [ARGS...]",
		Short: "Create a desktop entry that launches a game client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path, err := desktop.Create(desktop.Entry{
				Name:        name,
				SessionName: sessionName,
				CharacterID: characterID,
				Program:     args[0],
				Args:        args[1:],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Desktop entry created: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionName, "session-name", "s", "", "Use the session stored under a name")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the desktop entry")
	cmd.Flags().StringVarP(&characterID, "character-id", "c", "", "Character ID from 'jxctl ls'")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("character-id")

	return cmd
}
