package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildgate/internal/app"
)

type patchOptions struct {
	Manifest       string
	Plan           string
	Artifacts      []string
	RuntimeVersion string
	DryRun         bool
}

func newPatchCommand() *cobra.Command {
	opts := patchOptions{}
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply the plan's required shims to source artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPatch(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest file path")
	cmd.Flags().StringVar(&opts.Plan, "plan", "", "Build plan file path")
	cmd.Flags().StringSliceVar(&opts.Artifacts, "artifact", nil, "Source artifact path(s)")
	cmd.Flags().StringVar(&opts.RuntimeVersion, "runtime-version", "", "Runtime version override")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Apply shims without writing files")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("plan", cmd.Flags().Lookup("plan"))
	_ = viper.BindPFlag("artifacts", cmd.Flags().Lookup("artifact"))
	_ = viper.BindPFlag("runtime_version", cmd.Flags().Lookup("runtime-version"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runPatch(ctx context.Context, cmd *cobra.Command, opts patchOptions) error {
	service := newAppService()
	result, err := service.Patch(ctx, app.PatchRequest{
		ManifestPath:   resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		PlanPath:       resolveString(cmd, opts.Plan, "plan", "plan"),
		Artifacts:      resolveStrings(cmd, opts.Artifacts, "artifacts", "artifact"),
		RuntimeVersion: resolveString(cmd, opts.RuntimeVersion, "runtime_version", "runtime-version"),
		DryRun:         resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	if err != nil {
		return err
	}
	for _, outcome := range result.Outcomes {
		switch {
		case outcome.Err != nil:
			fmt.Printf("failed: %s (%v)\n", outcome.Path, outcome.Err)
		case outcome.Changed:
			fmt.Printf("patched: %s (%s)\n", outcome.Path, strings.Join(outcome.Applied, ", "))
		default:
			fmt.Printf("unchanged: %s\n", outcome.Path)
		}
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d artifacts failed", result.Failed, len(result.Outcomes))
	}
	return nil
}
