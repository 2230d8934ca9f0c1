package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/zvonbot/zvonocli/internal/cli"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/filter"
	"github.com/zvonbot/zvonocli/internal/keybinds"
	"github.com/zvonbot/zvonocli/internal/logging"
	"github.com/zvonbot/zvonocli/internal/mock"
	"github.com/zvonbot/zvonocli/internal/tui"
	"github.com/zvonbot/zvonocli/internal/types"
	"github.com/zvonbot/zvonocli/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zvonocli",
	Short: "Zvonobot API client - send SMS and voice messages from the terminal",
	Long: `zvonocli exercises the Zvonobot messaging API.

Run without arguments to start the interactive terminal page, or use a
subcommand to call one endpoint and print the response.

Examples:
  zvonocli                                      # Start interactive TUI
  zvonocli test-key                             # Check the API key
  zvonocli phones -q 'data[].phone'             # List outgoing numbers
  zvonocli sms --phone 77071234567 --text Hi    # Send an SMS
  zvonocli voice --phone 77071234567 --text Hi --from pick
  zvonocli check                                # Run all read-only checks`,
	Version:       version.String(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Persistent flags
var (
	flagConfig  string
	flagEnvFile string
	flagBaseURL string
	flagTimeout time.Duration
	flagEnv     string
	flagOutput  string
	flagQuery   string
	flagFilter  string
	flagVerbose bool
)

// Flags for sms/voice
var (
	flagPhone    string
	flagText     string
	flagFrom     string
	flagRecordID string
	flagSample   bool
)

var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "Send an SMS (POST send-sms)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(cmd, executor.ControlSMSForm, types.EndpointSendSMS)
	},
}

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Send a voice message (POST send-voice)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(cmd, executor.ControlVoice, types.EndpointSendVoice)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Call every read-only endpoint concurrently and report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		_, err = cli.Check(cmd.Context(), d, cmd.OutOrStdout())
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect client settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage terminal page key bindings",
}

var keybindsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default key bindings to ~/.zvonocli/keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Key bindings written to %s\n", config.KeybindsFile)
		return nil
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate ~/.zvonocli/keybinds.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if _, err := keybinds.LoadOrDefault(config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", config.KeybindsFile)
		return nil
	},
}

// Flags for mock
var (
	flagRoutes   string
	flagMockHost string
	flagMockPort int
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a local simulator of the messaging API",
	Long: `Serve canned API responses for offline use of the client.

Without --routes every endpoint answers with a successful envelope.

Examples:
  zvonocli mock --port 9090
  zvonocli --base-url http://localhost:9090 test-key
  zvonocli mock init routes.yaml && zvonocli mock --routes routes.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mock.DefaultConfig()
		workdir := "."
		if flagRoutes != "" {
			loaded, err := mock.LoadConfig(flagRoutes)
			if err != nil {
				return err
			}
			cfg = loaded
			workdir = filepath.Dir(flagRoutes)
		}
		if flagMockHost != "" {
			cfg.Host = flagMockHost
		}
		if flagMockPort != 0 {
			cfg.Port = flagMockPort
		}

		level := "info"
		if flagVerbose {
			level = "debug"
		}
		logger, err := logging.Setup(config.EnvDev, level, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		server := mock.NewServer(cfg, workdir, logger)
		fmt.Fprintf(cmd.OutOrStdout(), "Simulator on %s (Ctrl+C to stop)\n", server.Address())
		if err := server.Run(cmd.Context()); err != nil {
			return err
		}

		summary := server.Summary()
		total := 0
		for _, rc := range summary {
			total += rc.Requests
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nServed %d requests\n", total)
		for _, rc := range summary {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %d\n", rc.Rule, rc.Requests)
		}
		return nil
	},
}

var mockInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the default simulator routes to a .yaml or .json file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mock.SaveConfig(mock.DefaultConfig(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Routes written to %s\n", args[0])
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Settings file (default ~/.zvonocli/config.yaml)")
	pf.StringVar(&flagEnvFile, "env-file", "", "Load ZVONOCLI_* variables from a dotenv file")
	pf.StringVar(&flagBaseURL, "base-url", "", "API base URL")
	pf.DurationVar(&flagTimeout, "timeout", 0, "Request timeout (e.g. 10s)")
	pf.StringVar(&flagEnv, "env", "", "Log format environment (dev/prod)")
	pf.StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml/body)")
	pf.StringVarP(&flagQuery, "query", "q", "", "JMESPath query applied to the response body")
	pf.StringVar(&flagFilter, "filter", "", "JMESPath filter applied before --query")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests to stderr")

	for _, c := range []*cobra.Command{smsCmd, voiceCmd} {
		c.Flags().StringVar(&flagPhone, "phone", "", "Recipient phone (7XXXXXXXXXX, spaces and symbols allowed)")
		c.Flags().StringVar(&flagText, "text", "", "Message text")
		c.Flags().StringVar(&flagFrom, "from", "", "Outgoing phone, or 'pick' to choose interactively")
		c.Flags().BoolVar(&flagSample, "sample", false, "Fill missing phone and text with the sample data")
	}
	mockCmd.Flags().StringVar(&flagRoutes, "routes", "", "Route file (.yaml or .json)")
	mockCmd.Flags().StringVar(&flagMockHost, "host", "", "Listen host (default localhost)")
	mockCmd.Flags().IntVar(&flagMockPort, "port", 0, "Listen port (default 8080)")
	mockCmd.AddCommand(mockInitCmd)

	voiceCmd.Flags().StringVar(&flagRecordID, "record-id", "", "Pre-moderated audio record id")

	rootCmd.AddCommand(
		requestCmd("test-key", "Check the API key (GET test-api-key)", executor.ControlTestKey, types.EndpointTestAPIKey),
		requestCmd("profile", "Show the account profile (GET get-profile)", executor.ControlProfile, types.EndpointProfile),
		requestCmd("phones", "List outgoing phones (GET get-phones)", executor.ControlPhones, types.EndpointPhones),
		requestCmd("records", "List pre-moderated audio records (GET get-records)", executor.ControlRecords, types.EndpointRecords),
		smsCmd,
		voiceCmd,
		checkCmd,
		configCmd,
		keybindsCmd,
		mockCmd,
	)
	configCmd.AddCommand(configShowCmd)
	keybindsCmd.AddCommand(keybindsInitCmd, keybindsCheckCmd)
}

// requestCmd builds a subcommand that calls one GET endpoint
func requestCmd(use, short string, control executor.Control, ep types.Endpoint) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd)
			if err != nil {
				return err
			}
			return cli.Run(cmd.Context(), d, runOptions(cmd, control, ep, nil))
		},
	}
}

// runSend validates the flags like the terminal page validates its forms, then sends
func runSend(cmd *cobra.Command, control executor.Control, ep types.Endpoint) error {
	d, err := setup(cmd)
	if err != nil {
		return err
	}

	payload, err := cli.BuildSend(cmd.Context(), d, cli.SendOptions{
		Endpoint: ep,
		Phone:    flagPhone,
		Text:     flagText,
		RecordID: flagRecordID,
		From:     flagFrom,
		Sample:   flagSample,
	})
	if err != nil {
		return err
	}

	return cli.Run(cmd.Context(), d, runOptions(cmd, control, ep, payload))
}

func runOptions(cmd *cobra.Command, control executor.Control, ep types.Endpoint, payload any) cli.RunOptions {
	return cli.RunOptions{
		Control:      control,
		Endpoint:     ep,
		Payload:      payload,
		OutputFormat: flagOutput,
		Filter:       flagFilter,
		Query:        flagQuery,
		Color:        cli.UseColor(cmd.OutOrStdout()),
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	}
}

// loadConfig runs the startup sequence: paths, dotenv, settings file and environment, flags
func loadConfig() (config.Config, error) {
	if err := config.Initialize(); err != nil {
		return config.Config{}, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := config.LoadEnvFile(flagEnvFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.With(
		config.WithBaseURL(flagBaseURL),
		config.WithTimeout(flagTimeout),
		config.WithEnv(flagEnv),
	)
}

// setup builds the dispatcher for a command-line request; logs go to stderr
func setup(cmd *cobra.Command) (*executor.Dispatcher, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flagOutput != "" {
		if err := cli.ValidateFormat(flagOutput); err != nil {
			return nil, err
		}
	}
	// --from pick sends a request before the main one: reject bad expressions first
	if _, err := filter.Compile(flagFilter, flagQuery); err != nil {
		return nil, err
	}

	// Requests log at info; keep stderr quiet unless asked
	level := "warn"
	if flagVerbose {
		level = "debug"
	}
	logger, err := logging.Setup(cfg.Env, level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return executor.New(cfg, executor.WithLogger(logger)), nil
}

// runTUI starts the interactive TUI with logs going to ~/.zvonocli/zvonocli.log
func runTUI(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if f, err := logging.OpenFile(config.LogFile); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	logger, err := logging.Setup(cfg.Env, cfg.LogLevel, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	return tui.Run(cmd.Context(), cfg, logger, config.KeybindsFile)
}
