// Package output renders command results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
)

// WriteAccountTable renders the character list as a styled table.
func WriteAccountTable(w io.Writer, accounts []client.Account) {
	if len(accounts) == 0 {
		_, _ = fmt.Fprintln(w, "No characters found.")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatUpper
	tw.AppendHeader(table.Row{"Display Name", "Account ID", "User Hash"})
	for _, account := range accounts {
		tw.AppendRow(table.Row{account.DisplayName, account.AccountID, account.UserHash})
	}
	tw.Render()
}

// WriteAccountsJSON renders the character list as indented JSON.
func WriteAccountsJSON(w io.Writer, accounts []client.Account) error {
	if accounts == nil {
		accounts = []client.Account{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(accounts)
}
