package cmd

import (
	"errors"

	"github.com/bianoble/confbundle/pkg/confbundle"
	"github.com/spf13/cobra"
)

func newInstallCmd(s *settings) *cobra.Command {
	var (
		opts      confbundle.InstallOptions
		verifySSL bool
		ifDue     bool
	)

	cmd := &cobra.Command{
		Use:   "install [uri]",
		Short: "Install a configuration bundle, or reinstall the recorded ones",
		Long: `Installs the configuration bundle at uri into the cache and records it.
The origin type (git, dir, file or url) is inferred from uri unless --type is
given.

Without uri, every recorded origin is reinstalled in order. If --type, --args
or --verify-ssl=false are given without uri, only the most recently recorded
origin is reinstalled, using those values for this run; --args and
--verify-ssl are also stored for later runs.

With --if-due, recorded origins are only reinstalled when
config_install_interval has elapsed since the last install.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.URI = args[0]
			}
			if ifDue && opts.URI != "" {
				return errors.New("--if-due reinstalls recorded origins and cannot be combined with a uri")
			}
			opts.NoVerifySSL = !verifySSL

			client, err := newClient(s)
			if err != nil {
				return err
			}

			if ifDue {
				due, err := client.IsInstallDue()
				if err != nil {
					return err
				}
				if !due {
					info(cmd, s, "Config install not due yet.")
					return nil
				}
			}

			if err := client.Install(cmd.Context(), opts); err != nil {
				return err
			}
			if opts.URI != "" {
				info(cmd, s, "Installed %s", confbundle.HidePassword(opts.URI))
			} else {
				info(cmd, s, "Config install complete.")
			}
			detail(cmd, s, "cache: %s", client.CacheDir())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "origin type: git, dir, file or url")
	cmd.Flags().StringVarP(&opts.Args, "args", "a", "", "extra arguments for git clone")
	cmd.Flags().StringVarP(&opts.SourceFolder, "source-folder", "s", "", "install only this folder of the bundle")
	cmd.Flags().StringVar(&opts.TargetFolder, "target-folder", "", "install into this folder of the cache")
	cmd.Flags().BoolVar(&verifySSL, "verify-ssl", true, "verify TLS certificates")
	cmd.Flags().BoolVar(&ifDue, "if-due", false, "only reinstall when the install interval has elapsed")
	return cmd
}
