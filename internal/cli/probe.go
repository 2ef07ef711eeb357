package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildgate/internal/app"
)

type probeOptions struct {
	Manifest string
	Output   string
}

func newProbeCommand() *cobra.Command {
	opts := probeOptions{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Capture installed component versions to a probe file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest file path")
	cmd.Flags().StringVar(&opts.Output, "output", "probe.yaml", "Probe output path")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("probe_output", cmd.Flags().Lookup("output"))

	return cmd
}

func runProbe(ctx context.Context, cmd *cobra.Command, opts probeOptions) error {
	service := newAppService()
	result, err := service.Probe(ctx, app.ProbeRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		OutputPath:   resolveString(cmd, opts.Output, "probe_output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("probed: %d components -> %s\n", result.Detected, result.OutputPath)
	return nil
}
