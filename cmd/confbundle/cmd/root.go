package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bianoble/confbundle/internal/cache"
	"github.com/bianoble/confbundle/internal/logging"
	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings are the global options, resolved from flags and CONFBUNDLE_* env.
type settings struct {
	Home    string
	Verbose bool
	Quiet   bool

	log *clog.Logger
}

func newRootCmd() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:   "confbundle",
		Short: "Install shared configuration bundles into a local cache",
		Long: `confbundle fetches configuration bundles from git repositories, local
folders, archives or archive URLs and merges them into a local configuration
cache. Every installed origin is remembered so the whole set can be
reinstalled later, on demand or when the configured interval has elapsed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
	}

	root.PersistentFlags().String("home", "", "cache directory (default $CONFBUNDLE_HOME or ~/.confbundle)")
	root.PersistentFlags().Bool("verbose", false, "detailed output")
	root.PersistentFlags().Bool("quiet", false, "minimal output (errors only)")

	root.AddCommand(
		newInstallCmd(s),
		newDueCmd(s),
		newListCmd(s),
		newVersionCmd(),
	)
	return root
}

// load resolves the global settings. Flags win over environment variables.
func (s *settings) load(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("confbundle")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	s.Home = v.GetString("home")
	if s.Home == "" {
		s.Home = cache.DefaultDir()
	}
	s.Verbose = v.GetBool("verbose")
	s.Quiet = v.GetBool("quiet")
	s.log = logging.New(cmd.ErrOrStderr(), s.Verbose, s.Quiet)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "confbundle %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}
