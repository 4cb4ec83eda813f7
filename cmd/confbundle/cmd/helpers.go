package cmd

import (
	"fmt"

	"github.com/bianoble/confbundle/pkg/confbundle"
	"github.com/spf13/cobra"
)

// newClient opens the cache selected by the global settings.
func newClient(s *settings) (*confbundle.Client, error) {
	return confbundle.New(confbundle.Options{
		CacheDir: s.Home,
		Logger:   s.log,
	})
}

// info prints a line unless quiet mode is active.
func info(cmd *cobra.Command, s *settings, format string, args ...any) {
	if !s.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(cmd *cobra.Command, s *settings, format string, args ...any) {
	if s.Verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  "+format+"\n", args...)
	}
}
