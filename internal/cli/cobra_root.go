package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"reinforce/internal/checkpoint"
	"reinforce/internal/config"
	"reinforce/internal/httpapi"
	"reinforce/internal/logging"
	"reinforce/pkg/types"
)

// buildRootCmdWith constructs the command tree bound to opts. Command output
// goes to the cobra out writer; logs go to the err writer.
func buildRootCmdWith(opts *Options) *cobra.Command {
	var logger zerolog.Logger

	root := &cobra.Command{
		Use:           "reinforcectl",
		Short:         "Resolve REINFORCE training configuration and locate checkpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "Config file (.yaml|.yml|.json|.toml) overlaid on defaults (defaults REINFORCE_CONFIG)")
	pf.StringVar(&opts.GPU, "gpu", opts.GPU, "GPU tier: auto|a100|mid|low; anything else keeps the configured values (defaults REINFORCE_GPU or auto)")
	pf.Float64Var(&opts.GPUMemoryGB, "gpu-memory-gb", opts.GPUMemoryGB, "Skip detection and assume this much accelerator memory in GB (0 = no accelerator, <0 = detect)")
	pf.StringVar(&opts.NvidiaSMI, "nvidia-smi", opts.NvidiaSMI, "Path to nvidia-smi (default: discover)")
	pf.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug|info|warn|error|off (defaults REINFORCE_LOG_LEVEL or info)")
	pf.StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format: console|json")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger = logging.New(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
		config.SetLogger(logger)
		checkpoint.SetLogger(logger)
		httpapi.SetLogger(logger)
	}

	// config group
	configCmd := &cobra.Command{Use: "config", Short: "Inspect the resolved configuration", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("config requires a subcommand: show|validate")
	}}
	var format string
	configShow := &cobra.Command{Use: "show", Short: "Print defaults + config file + GPU tier overrides", Example: "  reinforcectl config show --gpu a100 --format toml", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		r, err := opts.resolve(cmd.Context())
		if err != nil {
			return err
		}
		b, err := config.Encode(settingsResponse(r), format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}}
	configShow.Flags().StringVarP(&format, "format", "o", "yaml", "Output format: yaml|json|toml")
	configValidate := &cobra.Command{Use: "validate", Short: "Load and validate the configuration", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		r, err := opts.resolve(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok (reward_mode=%s)\n", config.RewardMode(r.settings.Inference))
		return nil
	}}
	configCmd.AddCommand(configShow, configValidate)
	root.AddCommand(configCmd)

	// checkpoint group
	checkpointCmd := &cobra.Command{Use: "checkpoint", Aliases: []string{"ckpt"}, Short: "Locate training checkpoints", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("checkpoint requires a subcommand: latest|list")
	}}
	checkpointLatest := &cobra.Command{Use: "latest [dir]", Short: "Print the highest-step checkpoint path (defaults to training.checkpoint_dir)", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := checkpointDir(cmd.Context(), opts, args)
		if err != nil {
			return err
		}
		cp, ok, err := checkpoint.Latest(dir)
		if err != nil {
			return err
		}
		if !ok {
			return noCheckpointError{dir: dir}
		}
		logger.Debug().Uint64("step", cp.Step).Str("path", cp.Path).Msg("latest checkpoint")
		fmt.Fprintln(cmd.OutOrStdout(), cp.Path)
		return nil
	}}
	checkpointList := &cobra.Command{Use: "list [dir]", Short: "List checkpoints by ascending step", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := checkpointDir(cmd.Context(), opts, args)
		if err != nil {
			return err
		}
		cps, err := checkpoint.List(dir)
		if err != nil {
			return err
		}
		for _, cp := range cps {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", cp.Step, cp.Path)
		}
		return nil
	}}
	checkpointCmd.AddCommand(checkpointLatest, checkpointList)
	root.AddCommand(checkpointCmd)

	// serve
	addr := envStr("REINFORCE_ADDR", ":8080")
	var corsOrigins string
	serveCmd := &cobra.Command{Use: "serve", Short: "Serve the resolved configuration and checkpoint state over HTTP", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		r, err := opts.resolve(cmd.Context())
		if err != nil {
			return err
		}
		recordAcceleratorMemory(cmd.Context(), opts, logger)
		if origins := splitCSV(corsOrigins); len(origins) > 0 {
			httpapi.SetCORSOptions(true, origins, []string{"GET", "OPTIONS"}, []string{"Content-Type", "X-Log-Level"})
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewMux(httpapi.NewConfigService(r.settings, r.tier)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return serve(cmd.Context(), srv, logger)
	}}
	serveCmd.Flags().StringVar(&addr, "addr", addr, "HTTP listen address, e.g. :8080 (defaults REINFORCE_ADDR)")
	serveCmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (empty disables CORS)")
	root.AddCommand(serveCmd)

	return root
}

// noCheckpointError is returned by "checkpoint latest" when nothing matched.
type noCheckpointError struct{ dir string }

func (e noCheckpointError) Error() string { return "no checkpoint found in " + e.dir }

func checkpointDir(ctx context.Context, opts *Options, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	r, err := opts.resolve(ctx)
	if err != nil {
		return "", err
	}
	return r.settings.Training.CheckpointDir, nil
}

func settingsResponse(r resolved) types.SettingsResponse {
	return httpapi.NewConfigService(r.settings, r.tier).Settings()
}

// recordAcceleratorMemory exports accelerator memory for /metrics. Failures are logged only.
func recordAcceleratorMemory(ctx context.Context, opts *Options, logger zerolog.Logger) {
	p := opts.prober()
	ok, err := p.Available(ctx)
	if err != nil || !ok {
		if err != nil {
			logger.Warn().Err(err).Msg("accelerator probe failed")
		}
		return
	}
	mem, err := p.TotalMemory(ctx, 0)
	if err != nil {
		logger.Warn().Err(err).Msg("accelerator memory query failed")
		return
	}
	httpapi.SetAcceleratorMemory(mem)
}

// serve runs srv until ctx is canceled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func serve(ctx context.Context, srv *http.Server, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("reinforcectl listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

// Main runs the CLI with args and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	root := buildRootCmdWith(defaultOptions())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
