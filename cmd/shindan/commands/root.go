package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/araea/shindan-maker/lib/configutil"
	"github.com/araea/shindan-maker/lib/restyutil"
	"github.com/araea/shindan-maker/lib/shindan"
	"github.com/araea/shindan-maker/lib/telemetry"
	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

// Config is read from shindan.json5 in the working directory. Flags
// take priority over it.
type Config struct {
	Locale string `json:"locale"`
}

var (
	localeFlag    *string
	verboseFlag   *bool
	debugHttpFlag *string
)

func init() {
	localeFlag = rootCmd.PersistentFlags().StringP("locale", "l", "", "The shindanmaker deployment to talk to (jp, en, cn, kr, th).")
	verboseFlag = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	debugHttpFlag = rootCmd.PersistentFlags().String("debug-http", "", "Dump every http exchange into the given directory.")
}

var rootCmd = &cobra.Command{
	Use:   "shindan",
	Short: "shindan is a CLI for fetching and submitting shindanmaker shindans.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verboseFlag)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err)
	os.Exit(1)
}

func createClient() *shindan.Client {
	locale := *localeFlag
	if locale == "" {
		cfg, err := configutil.ReadConfig[Config]("shindan.json5")
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			fatal("failed to read config", err)
		}
		locale = cfg.Locale
	}
	if locale == "" {
		locale = "jp"
	}

	opts := shindan.ClientOptions{Locale: locale}
	if *debugHttpFlag != "" {
		output, err := restyutil.NewFilesystemOutput(*debugHttpFlag)
		if err != nil {
			fatal("failed to create http dump directory", err)
		}
		opts.DebugOutput = output
	}

	client, err := shindan.NewClient(opts)
	if err != nil {
		fatal("failed to initialize client", err)
	}
	return client
}

// guestName invents an input for commands invoked without one, the
// service requires a non-empty name.
func guestName() string {
	suffix, err := random.String(8)
	if err != nil {
		fatal("failed to generate guest name", err)
	}
	return "guest_" + suffix
}

func inputOrGuest(args []string) string {
	if len(args) >= 2 {
		return args[1]
	}
	return guestName()
}
