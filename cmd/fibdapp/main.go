// Command fibdapp connects to an Ethereum node, binds the Fibonacci contract
// and sends numbers to its fib method.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/branched-services/go-fibdapp/internal/config"
	"github.com/branched-services/go-fibdapp/internal/logging"
)

// annotationLogToFile marks commands that own the terminal.
const annotationLogToFile = "log-to-file"

// app carries flags and the state built from them for one invocation.
type app struct {
	configPath   string
	rpcURL       string
	artifactPath string
	metricsAddr  string
	verbose      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fibdapp",
		Short: "Fibonacci contract client",
		Long: `fibdapp connects to an Ethereum node, reads the active accounts and
network id, binds the Fibonacci contract deployed on that network and sends
numbers to its fib method.

Run without arguments to open the interactive form.`,
		SilenceUsage:      true,
		Annotations:       map[string]string{annotationLogToFile: "true"},
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runUI,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "fibdapp.yaml", "Path to configuration file")
	flags.StringVar(&a.rpcURL, "rpc", "", "Node RPC endpoint (overrides config)")
	flags.StringVar(&a.artifactPath, "artifact", "", "Path to the compiled contract JSON (overrides config)")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.uiCmd(),
		a.fibCmd(),
		a.watchCmd(),
		a.accountsCmd(),
		a.networksCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("rpc") {
		cfg.RPCURL = a.rpcURL
	}
	if flags.Changed("artifact") {
		cfg.Artifact = a.artifactPath
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = a.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	opts := logging.Options{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Verbose:     a.verbose,
	}
	if cmd.Annotations[annotationLogToFile] == "true" && cfg.Logging.File != "" {
		opts.OutputPaths = []string{cfg.Logging.File}
	}
	a.logger, err = logging.New(opts)
	return err
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
