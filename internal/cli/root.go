package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrminor/py-refman/internal/hosterr"
	"github.com/nrminor/py-refman/internal/infra/logger"
)

func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	if serr := a.shutdown(); serr != nil {
		logger.L().Warn("cli.shutdown", "error", serr)
	}
	if err == nil {
		return 0
	}

	fmt.Fprintf(a.stderr, "Error: %s\n", errorMessage(err))
	return 1
}

func errorMessage(err error) string {
	var he *hosterr.HostError
	if errors.As(err, &he) {
		return he.Message
	}
	return err.Error()
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "refman",
		Short:         "refman: manage reference datasets for bioinformatics projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	f := cmd.PersistentFlags()
	f.BoolVar(&a.flags.debug, "debug", false, "enable verbose logging to .refman/logs/refman.log")
	f.BoolVar(&a.flags.trace, "trace", false, "print OpenTelemetry spans to stderr")
	f.StringVar(&a.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	f.StringVar(&a.flags.configFile, "config", "", "settings file (default $REFMAN_HOME/config.yaml)")
	f.StringVarP(&a.flags.registry, "registry", "r", "", "registry directory or manifest file")
	f.BoolVarP(&a.flags.global, "global", "g", false, "use the per-user registry under $REFMAN_HOME")

	cmd.AddCommand(
		initCmd(a),
		registerCmd(a),
		removeCmd(a),
		downloadCmd(a),
		listCmd(a),
		urlsCmd(a),
		browseCmd(a),
		versionCmd(),
	)
	return cmd
}
