package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hr2-io/hr2-e2e/internal/config"
	"github.com/hr2-io/hr2-e2e/internal/logging"
	"github.com/hr2-io/hr2-e2e/internal/shortid"
	"github.com/hr2-io/hr2-e2e/internal/version"
)

// cli carries the persistent flags to the subcommands.
type cli struct {
	configFile string
	logLevel   string
}

func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configFile != "" {
		cfg, err = config.LoadFile(c.configFile)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	return cfg, nil
}

func (c *cli) logger(cfg *config.Config, w io.Writer) *log.Logger {
	return logging.New(logging.Options{
		Level:           cfg.Logging.Level,
		Output:          w,
		Prefix:          "hr2-e2e",
		ReportTimestamp: cfg.Logging.ReportTimestamp,
	})
}

// validate fails on configuration errors and logs the warnings.
func (c *cli) validate(cfg *config.Config, logger *log.Logger) error {
	v := config.NewValidator(cfg)
	err := v.Validate()
	for _, w := range v.Warnings() {
		logger.Warn("config: " + w)
	}
	return err
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "hr2-e2e",
		Short: "HR2 end-to-end suite tooling",
		Long: `Tooling for the HR2 browser end-to-end suite.

Shows which environments are configured, generates test entity names,
installs the playwright browsers and runs a login smoke check.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./e2e.yaml if present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newEnvsCmd(c),
		newShortIDCmd(),
		newSmokeCmd(c),
		newInstallCmd(c),
		newVersionCmd(),
	)
	return root
}

func newEnvsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List the known environments and whether they are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := c.validate(cfg, c.logger(cfg, cmd.ErrOrStderr())); err != nil {
				return err
			}
			printEnvironments(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printEnvironments(w io.Writer, cfg *config.Config) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, env := range config.KnownEnvironments() {
		url, err := cfg.ResolveURL(env)
		if err != nil {
			fmt.Fprintf(w, "%-5s %s\n", bold(env), red("not configured"))
			continue
		}
		creds := green("credentials set")
		if _, err := cfg.Credential(env); err != nil {
			creds = yellow("no credentials")
		}
		fmt.Fprintf(w, "%-5s %s  %s\n", bold(env), url, creds)
	}
}

func newShortIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "shortid [prefix]",
		Short:   "Print a short id, or prefix_<id> when a prefix is given",
		Example: "  hr2-e2e shortid DEPT",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), shortid.Name(prefix))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hr2-e2e %s\n", version.Full())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
