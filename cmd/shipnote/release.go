package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shipnote/pkg/git"
	"github.com/aretw0/shipnote/pkg/shipnote"
)

var (
	relConfigPath string
	relRepo       string
	relSource     string
	relWorkDir    string
	relToken      string
	relDraft      bool
	relPrerelease bool
	relDryRun     bool
	relTagLocal   bool
	relRetries    uint64
)

// releaseCmd runs the full pipeline and publishes the result.
var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Compute the next version and publish a GitHub release",
	Long: `Runs the whole pipeline: scans existing version tags, resolves the
previous release, collects and categorizes the changes since it, renders
the notes and creates the release. With --dry-run the rendered notes are
printed instead of published.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(cmd)
		if err != nil {
			fatal("Failed to load configuration", err)
		}
		ctx := cmd.Context()

		if relDryRun {
			plan, err := shipnote.Preview(ctx, cfg)
			if err != nil {
				fatal("Failed to render release notes", err)
			}
			fmt.Printf("Would publish %s:\n\n%s", plan.Version, plan.Body)
			return
		}

		plan, res, err := shipnote.Release(ctx, cfg)
		if err != nil {
			fatal("Release failed", err)
		}

		if relTagLocal {
			if err := tagLocally(ctx, cfg, plan.Version.String()); err != nil {
				fatal("Release published but local tag failed", err)
			}
		}

		fmt.Printf("Published %s: %s\n", plan.Version, res.URL)
	},
}

// buildConfig merges, in priority order: defaults, the config file, and
// any flags the user actually set.
func buildConfig(cmd *cobra.Command) (shipnote.Config, error) {
	cfg := shipnote.DefaultConfig()

	path := relConfigPath
	if path == "" {
		// A repo-local config file is picked up when present.
		if _, err := os.Stat(".shipnote.yaml"); err == nil {
			path = ".shipnote.yaml"
		}
	}
	if path != "" {
		loaded, err := shipnote.LoadConfig(path)
		if err != nil {
			return shipnote.Config{}, err
		}
		cfg = loaded
		slog.Debug("loaded configuration", "path", path)
	}

	if cmd.Flags().Changed("repo") {
		cfg.Repo = relRepo
	}
	if cmd.Flags().Changed("source") {
		cfg.Source = relSource
	}
	if cmd.Flags().Changed("workdir") {
		cfg.WorkDir = relWorkDir
	}
	if cmd.Flags().Changed("draft") {
		cfg.Draft = relDraft
	}
	if cmd.Flags().Changed("prerelease") {
		cfg.Prerelease = relPrerelease
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = relRetries
	}

	cfg.Token = relToken
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}

	return cfg, nil
}

func tagLocally(ctx context.Context, cfg shipnote.Config, tag string) error {
	client := git.NewClient(cfg.WorkDir, slog.Default())
	if err := client.CreateTag(ctx, tag); err != nil {
		return err
	}
	return client.PushTag(ctx, tag)
}

func init() {
	addConfigFlags(releaseCmd)
	releaseCmd.Flags().BoolVar(&relDraft, "draft", false, "Create the release as a draft")
	releaseCmd.Flags().BoolVar(&relPrerelease, "prerelease", false, "Mark the release as a prerelease")
	releaseCmd.Flags().BoolVar(&relDryRun, "dry-run", false, "Render the notes without publishing")
	releaseCmd.Flags().BoolVar(&relTagLocal, "tag-local", false, "Also create and push the tag from the local checkout")
	releaseCmd.Flags().Uint64Var(&relRetries, "retries", 0, "Retry transient publish failures up to N times")
	rootCmd.AddCommand(releaseCmd)
}

// addConfigFlags registers the flags shared by release and preview.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&relConfigPath, "config", "", "Path to a .shipnote.yaml (default: repo-local file if present)")
	cmd.Flags().StringVarP(&relRepo, "repo", "r", "", "Repository slug, e.g. acme/widget")
	cmd.Flags().StringVarP(&relSource, "source", "s", "", "History source: commits or prs")
	cmd.Flags().StringVarP(&relWorkDir, "workdir", "C", "", "Local checkout to read history from (default .)")
	cmd.Flags().StringVar(&relToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN env var)")
}
