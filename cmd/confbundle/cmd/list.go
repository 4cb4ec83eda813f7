package cmd

import (
	"fmt"
	"strings"

	"github.com/bianoble/confbundle/pkg/confbundle"
	"github.com/spf13/cobra"
)

func newListCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded origins in install order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(s)
			if err != nil {
				return err
			}
			origins, err := client.Origins()
			if err != nil {
				return err
			}
			if len(origins) == 0 {
				info(cmd, s, "No config installed.")
				return nil
			}
			for i, o := range origins {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, describe(o))
			}
			return nil
		},
	}
}

// describe renders an origin on one line with its password hidden.
func describe(o confbundle.Origin) string {
	parts := []string{o.String()}
	if o.Args != "" {
		parts = append(parts, fmt.Sprintf("args=%q", o.Args))
	}
	if o.SourceFolder != "" {
		parts = append(parts, "source_folder="+o.SourceFolder)
	}
	if o.TargetFolder != "" {
		parts = append(parts, "target_folder="+o.TargetFolder)
	}
	if !o.VerifySSL {
		parts = append(parts, "verify_ssl=false")
	}
	return strings.Join(parts, " ")
}
