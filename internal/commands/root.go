// Package commands wires the costmn CLI on top of the client library.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/costmn/costmn-go/internal/buildinfo"
	"github.com/costmn/costmn-go/internal/config"
	"github.com/costmn/costmn-go/pkg/costmn"
)

// rootOptions carries the resolved configuration shared by subcommands.
type rootOptions struct {
	configPath string
	baseURL    string
	cfg        *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "costmn",
		Short:   "Personal budget jars on the command line",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real environment variables win
			_ = godotenv.Load()

			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.costmn.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL override")

	rootCmd.AddCommand(newLoginCommand(opts))
	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newPendingCommand(opts))
	rootCmd.AddCommand(newCompleteCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))
	rootCmd.AddCommand(newSetCommand(opts))
	rootCmd.AddCommand(newSampleCommand(opts))

	return rootCmd
}

// newClient builds a library client from flags, config file and
// environment, in that precedence order.
func (o *rootOptions) newClient() (*costmn.Client, error) {
	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = o.cfg.BaseURL
	}
	if baseURL == "" {
		baseURL = os.Getenv("COSTMN_BASE_URL")
	}

	sessionFile := o.cfg.SessionFile
	if env := os.Getenv("COSTMN_SESSION_FILE"); env != "" {
		sessionFile = env
	}
	if sessionFile == "" {
		sessionFile = config.Default().SessionFile
	}

	clientOpts := &costmn.ClientOptions{
		BaseURL:     baseURL,
		Token:       os.Getenv("COSTMN_TOKEN"),
		SessionFile: sessionFile,
		SentryDSN:   o.cfg.SentryDSN,
		OnUnauthorized: func() {
			fmt.Fprintln(os.Stderr, "Session expired, run `costmn login` again")
		},
	}
	if o.cfg.TimeoutSecs > 0 {
		clientOpts.Timeout = time.Duration(o.cfg.TimeoutSecs) * time.Second
	}

	return costmn.NewClient(clientOpts)
}

func (o *rootOptions) sessionFile() string {
	if env := os.Getenv("COSTMN_SESSION_FILE"); env != "" {
		return env
	}
	if o.cfg.SessionFile != "" {
		return o.cfg.SessionFile
	}
	return config.Default().SessionFile
}
