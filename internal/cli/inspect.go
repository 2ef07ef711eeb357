package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildgate/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize resolver outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("build mode: %s (target %s)\n", result.BuildMode, result.TargetOS)
	for _, component := range result.Components {
		fmt.Printf("  %s %s (%s)\n", component.Name, component.Version, component.Source)
	}
	for _, feature := range result.Features {
		state := "off"
		if feature.Enabled {
			state = "on"
		}
		fmt.Printf("  feature %s=%s\n", feature.ID, state)
	}
	for _, shim := range result.Shims {
		fmt.Printf("  shim %s\n", shim)
	}
	if len(result.Records) > 0 {
		fmt.Printf("  %d rule(s) matched\n", len(result.Records))
	}
	return nil
}
