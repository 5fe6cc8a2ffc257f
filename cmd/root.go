/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/allbin/mameduino"
	"github.com/allbin/mameduino/internal/config"
	"github.com/allbin/mameduino/internal/logging"
	"github.com/allbin/mameduino/internal/serial"
	"github.com/allbin/mameduino/internal/ui"
)

// version is set at build time with -ldflags "-X github.com/allbin/mameduino/cmd.version=..."
var version = "dev"

// Process exit codes
const (
	ExitOK        = 0
	ExitArgs      = -1
	ExitOpen      = -2
	ExitConfigure = -3
	ExitIO        = -4
	ExitDevice    = -5
)

// commandFlags are the flags that select the device command
var commandFlags = []string{"reject", "short", "long", "coin", "dump", "identify"}

// environment is everything the commands reach outside the process through
type environment struct {
	open      mameduino.Opener
	exists    func(path string) bool
	listPorts func() ([]string, error)
	now       func() time.Time
}

func defaultEnvironment() environment {
	return environment{
		open:      mameduino.OpenSerial,
		exists:    serial.Exists,
		listPorts: serial.ListPorts,
		now:       time.Now,
	}
}

// argError marks a failure in the command line itself
type argError struct {
	err error
}

func (e argError) Error() string { return e.err.Error() }
func (e argError) Unwrap() error { return e.err }

func newArgError(err error) error {
	if err == nil {
		return nil
	}
	return argError{err: err}
}

// noArgs rejects positional arguments as an argument error
func noArgs(cmd *cobra.Command, args []string) error {
	return newArgError(cobra.NoArgs(cmd, args))
}

type rootOptions struct {
	reject   string
	short    int
	long     int
	coin     int
	dump     bool
	identify bool
	auto     bool
	trace    bool

	configFile string
}

// newRootCmd builds the command tree. Flags that persist across subcommands
// are bound into v.
func newRootCmd(env environment, v *viper.Viper) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mameduino <device|-a> <command> [keys...]",
		Short: "Configure the Arduino Leonardo MAME interface",
		Long: `MAMEduino ` + version + ` - Configure the Arduino Leonardo MAME interface.

Sends one command to a MAMEduino over its serial port and reports whether the
device accepted it.

Commands:
  -r on|off               Enable or disable coin rejection
  -s <0-4> <key...>       Set the keys sent on a short press of a button
  -l <0-4> <key...>       Set the keys sent on a long press of a button
  -c <0-2> <key...>       Set the keys sent when a coin is inserted
  -d                      Dump the device configuration
  -i                      Show the device identification

Up to 6 keys may be given. A single character is sent as itself; longer names
are looked up in the key table (see "mameduino keys"). CLEAR removes a binding.

Examples:
  mameduino /dev/ttyACM0 -r on
  mameduino /dev/ttyACM0 -s 0 UP
  mameduino /dev/ttyACM0 -l 4 LCTRL c
  mameduino -a -c 0 5
  mameduino -a -d`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, env, v, opts, args)
		},
	}

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newArgError(err)
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.reject, "reject", "r", "", "coin rejection: on or off")
	flags.IntVarP(&opts.short, "short", "s", 0, "button `index` (0-4) to set short press keys for")
	flags.IntVarP(&opts.long, "long", "l", 0, "button `index` (0-4) to set long press keys for")
	flags.IntVarP(&opts.coin, "coin", "c", 0, "coin `index` (0-2) to set keys for")
	flags.BoolVarP(&opts.dump, "dump", "d", false, "dump the device configuration")
	flags.BoolVarP(&opts.identify, "identify", "i", false, "show the device identification")
	flags.BoolVarP(&opts.auto, "auto", "a", false, "find the device by probing /dev/ttyACM* and /dev/ttyUSB*")
	flags.BoolVar(&opts.trace, "trace", false, "print the bytes exchanged with the device")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.configFile, "config", "", "config file (default is mameduino.yaml in ., $HOME/.config/mameduino or /etc/mameduino)")
	persistent.Duration("timeout", mameduino.DefaultTimeout, "how long to wait for the device to answer")
	persistent.Duration("poll", mameduino.DefaultPollInterval, "pause between reads while waiting")
	persistent.String("log-level", "warn", "log level: debug, info, warn or error")
	persistent.String("log-file", "", "also write logs to this file, rotated")

	v.BindPFlag("timeout", persistent.Lookup("timeout"))
	v.BindPFlag("poll", persistent.Lookup("poll"))
	v.BindPFlag("log.level", persistent.Lookup("log-level"))
	v.BindPFlag("log.file", persistent.Lookup("log-file"))

	rootCmd.AddCommand(newListCmd(env, v, &opts.configFile))
	rootCmd.AddCommand(newKeysCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, newRootCmd(defaultEnvironment(), config.New()), os.Args[1:])
}

func execute(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(normalizeArgs(args))

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	ui.Println(cmd.ErrOrStderr(), ui.StatusError, "Error: %v", err)
	var ae argError
	if errors.As(err, &ae) {
		fmt.Fprintln(cmd.ErrOrStderr())
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	}
	return exitCode(err)
}

// normalizeArgs maps the DOS style -? to --help
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-?" {
			arg = "--help"
		}
		out[i] = arg
	}
	return out
}

// exitCode classifies err into one of the process exit codes
func exitCode(err error) int {
	var ae argError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ae):
		return ExitArgs
	case errors.Is(err, serial.ErrConfigureFailed):
		return ExitConfigure
	case errors.Is(err, serial.ErrOpenFailed), errors.Is(err, mameduino.ErrNoDevice):
		return ExitOpen
	case errors.Is(err, mameduino.ErrDeviceRejected),
		errors.Is(err, mameduino.ErrResponseTimeout),
		errors.Is(err, mameduino.ErrNotMAMEduino):
		return ExitDevice
	default:
		return ExitIO
	}
}

func runRoot(cmd *cobra.Command, env environment, v *viper.Viper, opts *rootOptions, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Banner(version))

	device, keys, err := splitArgs(opts.auto, args)
	if err != nil {
		return newArgError(err)
	}
	frame, err := buildFrame(cmd, opts, keys)
	if err != nil {
		return newArgError(err)
	}

	cfg, logger, err := setup(v, opts.configFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	clientOpts := []mameduino.Option{
		mameduino.WithTimeout(cfg.Timeout),
		mameduino.WithPollInterval(cfg.Poll),
		mameduino.WithLogger(logger),
	}

	var client *mameduino.Client
	if opts.auto {
		detector := &mameduino.Detector{
			Candidates:    cfg.Detect.Candidates,
			Open:          env.open,
			Exists:        env.exists,
			ClientOptions: clientOpts,
			Logger:        logger,
		}
		client, err = detector.Detect(ctx)
		if err != nil {
			return err
		}
		ui.Println(out, ui.StatusInfo, "Found %s on %s", client.Identity(), client.Path())
	} else {
		fmt.Fprintln(out, ui.MutedStyle.Render("Opening serial port "+device+" ..."))
		port, err := env.open(device)
		if err != nil {
			return err
		}
		client = mameduino.NewClient(device, port, clientOpts...)
	}
	defer client.Close()

	resp, err := client.Send(ctx, frame)
	if opts.trace {
		traceExchange(cmd, env, frame, resp, err)
	}
	if err != nil {
		return err
	}

	if text := resp.Text(); text != "" {
		fmt.Fprintln(out, ui.MutedStyle.Render(text))
	}
	ui.Println(out, ui.StatusSuccess, "%s: OK", describe(frame, opts))
	return nil
}

// setup loads the configuration and builds the logger from it
func setup(v *viper.Viper, configFile string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, nil, newArgError(err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, newArgError(fmt.Errorf("logger: %w", err))
	}
	return cfg, logger, nil
}

// splitArgs separates the device path from the key tokens. With auto
// detection every positional argument is a key.
func splitArgs(auto bool, args []string) (string, []string, error) {
	if auto {
		return "", args, nil
	}
	if len(args) == 0 {
		return "", nil, mameduino.ErrDevicePath
	}
	if !strings.HasPrefix(args[0], serial.DevicePrefix) {
		return "", nil, fmt.Errorf("%w, got %q", mameduino.ErrDevicePath, args[0])
	}
	return args[0], args[1:], nil
}

// buildFrame turns the single command flag and its key arguments into a frame
func buildFrame(cmd *cobra.Command, opts *rootOptions, keys []string) (mameduino.Frame, error) {
	var selected []string
	for _, name := range commandFlags {
		if cmd.Flags().Changed(name) {
			selected = append(selected, "--"+name)
		}
	}
	switch len(selected) {
	case 0:
		return nil, mameduino.ErrNoCommand
	case 1:
	default:
		return nil, fmt.Errorf("%w, got %s", mameduino.ErrMultipleCommands, strings.Join(selected, " "))
	}

	switch selected[0] {
	case "--short":
		return mameduino.ButtonFrame(false, opts.short, keys)
	case "--long":
		return mameduino.ButtonFrame(true, opts.long, keys)
	case "--coin":
		return mameduino.CoinFrame(opts.coin, keys)
	}

	if len(keys) > 0 {
		return nil, fmt.Errorf("%w %q", mameduino.ErrUnexpectedArg, keys[0])
	}
	switch selected[0] {
	case "--reject":
		return mameduino.RejectFrame(opts.reject)
	case "--dump":
		return mameduino.DumpFrame(), nil
	default:
		return mameduino.VersionFrame(), nil
	}
}

// describe names what a frame changed for the success line
func describe(frame mameduino.Frame, opts *rootOptions) string {
	switch frame.Command() {
	case mameduino.SetCoinReject:
		return "Coin rejection " + opts.reject
	case mameduino.SetButtonShort:
		return fmt.Sprintf("Button %d short press", opts.short)
	case mameduino.SetButtonLong:
		return fmt.Sprintf("Button %d long press", opts.long)
	case mameduino.SetCoin:
		return fmt.Sprintf("Coin %d", opts.coin)
	case mameduino.DumpConfig:
		return "Configuration dump"
	default:
		return "Identification"
	}
}

func traceExchange(cmd *cobra.Command, env environment, frame mameduino.Frame, resp *mameduino.Response, err error) {
	out := cmd.OutOrStdout()
	status := ui.TXWritten
	if resp == nil && err != nil {
		status = ui.TXError
	}
	fmt.Fprintln(out, ui.FormatExchange(ui.ExchangeLine{
		Timestamp: env.now(),
		Direction: ui.TX,
		Status:    status,
		Data:      frame,
	}))
	if resp != nil {
		fmt.Fprintln(out, ui.FormatExchange(ui.ExchangeLine{
			Timestamp: env.now(),
			Direction: ui.RX,
			Data:      resp.Raw,
		}))
	}
}
