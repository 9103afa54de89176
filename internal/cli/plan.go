package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftship/driftship/internal/config"
	"github.com/driftship/driftship/internal/ship"
)

var (
	planNoPublish bool
	planVersion   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a ship run would do, without making changes",
	RunE:  runPlanCmd,
}

func init() {
	planCmd.Flags().BoolVar(&planNoPublish, "no-publish", false, "exclude the publish-binary check from preflight")
	planCmd.Flags().StringVar(&planVersion, "version", "", "explicit version to plan for, bypassing resolution")
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	configureLogLevel()
	ctx := cmd.Context()

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := ship.Options{DryRun: true, ExplicitVersion: planVersion}
	shipCfg := config.ToShipConfig(cfg)
	collaborators := buildCollaborators(root, !planNoPublish)

	plan, err := ship.PlanShip(ctx, root, shipCfg, opts, collaborators)
	if err != nil {
		return fmt.Errorf("planning ship: %w", err)
	}

	if plan.Interactive != nil {
		return printInteractivePlan(plan.Interactive)
	}
	return printReadyPlan(plan.Ready)
}

func printInteractivePlan(plan *ship.InteractiveShip) error {
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"previous_version": plan.PreviousVersion,
			"previous_tag":     plan.PreviousTag,
			"candidates":       plan.Candidates,
			"recent_commits":   plan.RecentCommits,
		})
	}
	fmt.Printf("Previous version: %s (%s)\n", plan.PreviousVersion, plan.PreviousTag)
	fmt.Println("No changelog-tool marker detected; version must be chosen interactively:")
	fmt.Printf("  patch  %s\n", plan.Candidates.Patch)
	fmt.Printf("  minor  %s\n", plan.Candidates.Minor)
	fmt.Printf("  major  %s\n", plan.Candidates.Major)
	fmt.Printf("Recent commits (%d):\n", len(plan.RecentCommits))
	for _, c := range plan.RecentCommits {
		fmt.Printf("  %s %s\n", c.Hash[:min(7, len(c.Hash))], c.Message)
	}
	return nil
}

func printReadyPlan(ready *ship.ReadyShip) error {
	pctx := ready.Context()
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pctx)
	}
	fmt.Printf("Would ship %s (previously %s) as tag %s\n", pctx.Version, pctx.PreviousVersion, pctx.Tag)
	fmt.Printf("Ecosystem: %s\n", pctx.Ecosystem)
	return nil
}
