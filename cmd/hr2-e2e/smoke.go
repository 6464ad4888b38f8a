package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hr2-io/hr2-e2e/internal/browser"
	"github.com/hr2-io/hr2-e2e/internal/config"
	"github.com/hr2-io/hr2-e2e/internal/fixtures"
	"github.com/hr2-io/hr2-e2e/internal/pages"
)

func newSmokeCmd(c *cli) *cobra.Command {
	var (
		env     string
		retries int
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Log in to an environment and check the dashboard",
		Long: `Launches the configured browser, signs in to the environment with its
configured credentials and asserts the dashboard heading and welcome text.
A screenshot (and trace, if enabled) is saved when the check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runSmoke(ctx, cmd, env, retries)
		},
	}
	cmd.Flags().StringVar(&env, "env", config.EnvStg, "environment: qa, stg or prod")
	cmd.Flags().IntVar(&retries, "retries", 0, "navigation attempts (default from config)")
	return cmd
}

func (c *cli) runSmoke(ctx context.Context, cmd *cobra.Command, env string, retries int) (err error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := c.logger(cfg, cmd.ErrOrStderr())
	if err := c.validate(cfg, logger); err != nil {
		return err
	}
	// Fail on a bad environment before paying for a browser launch.
	cred, err := cfg.Credential(env)
	if err != nil {
		return err
	}

	s, err := browser.Launch(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		s.Finish("smoke-"+env, err != nil)
		if cerr := s.Close(); cerr != nil {
			logger.Debug("browser close", "err", cerr)
		}
	}()

	if retries > 0 {
		cfg.Navigation.Retries = retries
	}
	login := pages.NewApp(s.Page, logger, cfg, fixtures.Default()).Login
	if err := login.Login(ctx, env, cred); err != nil {
		return err
	}
	if err := login.ExpectDashboard(); err != nil {
		return fmt.Errorf("smoke check failed on %s: %w", env, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s dashboard reachable\n", color.GreenString("✓"), env)
	return nil
}

func newInstallCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the playwright driver and the configured browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := browser.Install(cfg.Browser); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s installed %s\n", color.GreenString("✓"), cfg.Browser.Name)
			return nil
		},
	}
}
