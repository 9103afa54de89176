package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftship/driftship/internal/config"
	"github.com/driftship/driftship/internal/phase"
	"github.com/driftship/driftship/internal/ship"
)

var (
	shipNoTest      bool
	shipNoChangelog bool
	shipNoPublish   bool
	shipNoPush      bool
	shipNoTag       bool
	shipNoGit       bool
	shipNoRelease   bool
	shipNoDeps      bool
	shipNoStats     bool
	shipNoNotes     bool
	shipDryRun      bool
	shipVersion     string
	shipDraft       string
	shipTagPrefix   string
)

var shipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Run a full release: preflight, version, test, bump, publish, git, release",
	RunE:  runShip,
}

func init() {
	shipCmd.Flags().BoolVar(&shipNoTest, "no-test", false, "skip the test phase")
	shipCmd.Flags().BoolVar(&shipNoChangelog, "no-changelog", false, "skip changelog rendering")
	shipCmd.Flags().BoolVar(&shipNoPublish, "no-publish", false, "skip the publish phase")
	shipCmd.Flags().BoolVar(&shipNoPush, "no-push", false, "skip pushing the release commit")
	shipCmd.Flags().BoolVar(&shipNoTag, "no-tag", false, "skip creating and pushing the tag")
	shipCmd.Flags().BoolVar(&shipNoGit, "no-git", false, "skip the git phase entirely")
	shipCmd.Flags().BoolVar(&shipNoRelease, "no-release", false, "skip creating a GitHub release")
	shipCmd.Flags().BoolVar(&shipNoDeps, "no-deps", false, "skip dependency-change collection")
	shipCmd.Flags().BoolVar(&shipNoStats, "no-stats", false, "skip release-statistics collection")
	shipCmd.Flags().BoolVar(&shipNoNotes, "no-notes", false, "skip release-notes rendering")
	shipCmd.Flags().BoolVar(&shipDryRun, "dry-run", false, "simulate actions without making changes")
	shipCmd.Flags().StringVar(&shipVersion, "version", "", "explicit version to ship, bypassing resolution")
	shipCmd.Flags().StringVar(&shipDraft, "draft", "", "override the release draft state (true|false)")
	shipCmd.Flags().StringVar(&shipTagPrefix, "tag-prefix", "", "override the default \"v\" tag prefix")
}

func shipOptionsFromFlags() ship.Options {
	opts := ship.Options{
		NoTest:          shipNoTest,
		NoChangelog:     shipNoChangelog,
		NoPublish:       shipNoPublish,
		NoPush:          shipNoPush,
		NoTag:           shipNoTag,
		NoGit:           shipNoGit,
		NoRelease:       shipNoRelease,
		NoDeps:          shipNoDeps,
		NoStats:         shipNoStats,
		NoNotes:         shipNoNotes,
		DryRun:          shipDryRun,
		ExplicitVersion: shipVersion,
		TagPrefix:       shipTagPrefix,
	}
	if shipDraft != "" {
		draft := strings.EqualFold(shipDraft, "true")
		opts.DraftOverride = &draft
	}
	return opts
}

func runShip(cmd *cobra.Command, _ []string) error {
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

	opts := shipOptionsFromFlags()
	shipCfg := config.ToShipConfig(cfg)
	collaborators := buildCollaborators(root, !opts.NoPublish)

	plan, err := ship.PlanShip(ctx, root, shipCfg, opts, collaborators)
	if err != nil {
		return fmt.Errorf("planning ship: %w", err)
	}

	ready := plan.Ready
	if ready == nil {
		chosen, err := promptForVersion(plan.Interactive)
		if err != nil {
			return err
		}
		ready, err = ship.ResolveShipInteraction(ctx, plan.Interactive, chosen)
		if err != nil {
			return fmt.Errorf("resolving chosen version: %w", err)
		}
	}

	outcome, err := ready.Execute(ctx, onShipEvent)
	if err != nil {
		return fmt.Errorf("executing ship: %w", err)
	}

	return printOutcome(outcome)
}

// promptForVersion reads the user's choice of candidate version from
// stdin, grounded on the teacher's approve.go confirmation-prompt pattern,
// narrowed to plain-text stdin since no TUI library is wired (SPEC_FULL.md
// §3 drops bubbletea/lipgloss as decoration for an out-of-scope surface).
func promptForVersion(plan *ship.InteractiveShip) (string, error) {
	fmt.Printf("Previous version: %s\n", plan.PreviousVersion)
	fmt.Printf("  [1] patch  %s\n", plan.Candidates.Patch)
	fmt.Printf("  [2] minor  %s\n", plan.Candidates.Minor)
	fmt.Printf("  [3] major  %s\n", plan.Candidates.Major)
	fmt.Print("Choose a version (1/2/3) or type an explicit version: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading version choice: %w", err)
	}
	switch strings.TrimSpace(line) {
	case "1":
		return plan.Candidates.Patch, nil
	case "2":
		return plan.Candidates.Minor, nil
	case "3":
		return plan.Candidates.Major, nil
	default:
		return strings.TrimSpace(line), nil
	}
}

func onShipEvent(ev phase.Event) {
	switch ev.Kind {
	case phase.PhaseStarted:
		logger.Info("phase started", "phase", ev.Phase, "run_id", ev.RunID)
	case phase.PhaseCompleted:
		attrs := []any{"phase", ev.Phase, "run_id", ev.RunID}
		if ev.Outcome != nil {
			attrs = append(attrs, "skipped", ev.Outcome.Skipped, "reason", ev.Outcome.Reason)
		}
		logger.Info("phase completed", attrs...)
	case phase.HooksStarted:
		logger.Info("hooks started", "hook_point", ev.HookPoint, "count", ev.HookCount, "run_id", ev.RunID)
	case phase.HooksCompleted:
		logger.Info("hooks completed", "hook_point", ev.HookPoint, "run_id", ev.RunID)
	}
}

func printOutcome(outcome *ship.Outcome) error {
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}
	fmt.Printf("Shipped %s (previously %s)\n", outcome.Version, outcome.PreviousVersion)
	fmt.Printf("Tag: %s\n", outcome.Tag)
	for _, record := range outcome.Phases {
		status := "ran"
		if record.Outcome.Skipped {
			status = fmt.Sprintf("skipped (%s)", record.Outcome.Reason)
		}
		fmt.Printf("  %-10s %s\n", record.Phase, status)
	}
	return nil
}
