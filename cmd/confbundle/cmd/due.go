package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDueCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "Report whether a scheduled reinstall is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(s)
			if err != nil {
				return err
			}
			due, err := client.IsInstallDue()
			if err != nil {
				return err
			}
			if due {
				fmt.Fprintln(cmd.OutOrStdout(), "due")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "not due")
			}
			return nil
		},
	}
}
