/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allbin/mameduino"
	"github.com/allbin/mameduino/internal/ui"
)

// newKeysCmd builds the keys command
func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show the named keys",
		Long: `Show the key names that can be bound to buttons and coins, with the code
sent to the device for each.

Any single character is also accepted and sent as itself.`,
		Args: noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			names := mameduino.KeyNames()
			rows := make([]ui.KeyRow, 0, len(names))
			for _, k := range names {
				rows = append(rows, ui.KeyRow{Name: k.Name, Code: k.Code})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderKeyTable(rows))
		},
	}
}
