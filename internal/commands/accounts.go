package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts [ledger]",
		Short: "List every account with its type and currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(*g, args)
			if err != nil {
				return err
			}
			list, err := svc.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), list)
			return err
		},
	}
}
