package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildgate/internal/app"
)

type resolveOptions struct {
	Manifest  string
	Probe     string
	TargetOS  string
	OutputDir string
	Live      bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a build plan from a manifest and a probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest file path")
	cmd.Flags().StringVar(&opts.Probe, "probe", "", "Captured probe file path")
	cmd.Flags().StringVar(&opts.TargetOS, "target-os", "", "Target OS (darwin, linux, windows)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().BoolVar(&opts.Live, "live", false, "Capture a live probe instead of reading --probe")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("probe", cmd.Flags().Lookup("probe"))
	_ = viper.BindPFlag("target_os", cmd.Flags().Lookup("target-os"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("live", cmd.Flags().Lookup("live"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		ProbePath:    resolveString(cmd, opts.Probe, "probe", "probe"),
		TargetOS:     resolveString(cmd, opts.TargetOS, "target_os", "target-os"),
		OutputDir:    resolveString(cmd, opts.OutputDir, "output", "output"),
		Live:         resolveBool(cmd, opts.Live, "live", "live"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s (%s)\n", result.Name, result.BuildMode)
	return nil
}
