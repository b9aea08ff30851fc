package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ryclarke/release-tool/config"
	"github.com/ryclarke/release-tool/output"
	"github.com/ryclarke/release-tool/release"
	"github.com/ryclarke/release-tool/scm"

	// Register the release providers
	_ "github.com/ryclarke/release-tool/scm/github"
)

const (
	configFlag      = "config"
	verboseFlag     = "verbose"
	repositoryFlag  = "repository"
	schemeFlag      = "bump-version-scheme"
	tagPrefixFlag   = "tag-prefix"
	releaseNameFlag = "release-name"
	releaseBodyFlag = "release-body"
	autoNotesFlag   = "use-github-release-notes"
	maxCommitsFlag  = "max-commits"
	commitOrderFlag = "commit-order"
	shaFlag         = "sha"
	dryRunFlag      = "dry-run"
)

// RootCmd configures the top-level root command along with all flags
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "release-tool",
		Short: "Tag and publish a release on every push to the default branch",
		Long: `Tag and publish a release on every push to the default branch

On each run the latest release is looked up and its tag parsed, the next
semantic version is resolved from the configured bump scheme and any
override signals (commit marker, pull request labels), and a new tag and
release are created for the target commit. The resulting tag name,
version, and upload URL are exposed as step outputs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper := config.Viper(cmd.Context())

			viper.BindPFlag(config.GitRepository, cmd.Flags().Lookup(repositoryFlag))
			viper.BindPFlag(config.BumpScheme, cmd.Flags().Lookup(schemeFlag))
			viper.BindPFlag(config.TagPrefix, cmd.Flags().Lookup(tagPrefixFlag))
			viper.BindPFlag(config.ReleaseName, cmd.Flags().Lookup(releaseNameFlag))
			viper.BindPFlag(config.ReleaseBody, cmd.Flags().Lookup(releaseBodyFlag))
			viper.BindPFlag(config.UseAutoNotes, cmd.Flags().Lookup(autoNotesFlag))
			viper.BindPFlag(config.MaxCommits, cmd.Flags().Lookup(maxCommitsFlag))
			viper.BindPFlag(config.CommitOrder, cmd.Flags().Lookup(commitOrderFlag))
			viper.BindPFlag(config.TargetSHA, cmd.Flags().Lookup(shaFlag))
			viper.BindPFlag(config.DryRun, cmd.Flags().Lookup(dryRunFlag))

			if verbose, _ := cmd.Flags().GetBool(verboseFlag); verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			return config.Validate(viper)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
		Version: config.Version,
	}

	rootCmd.PersistentFlags().StringVar(&config.CfgFile, configFlag, "", "config file (inputs normally arrive via the environment)")
	rootCmd.PersistentFlags().BoolP(verboseFlag, "v", false, "enable debug logging")

	rootCmd.Flags().String(repositoryFlag, "", "target repository as owner/name (default: $GITHUB_REPOSITORY)")
	rootCmd.Flags().String(schemeFlag, "minor", "default bump scheme: major, minor, patch, or norelease")
	rootCmd.Flags().String(tagPrefixFlag, "v", "prefix prepended to rendered version tags")
	rootCmd.Flags().String(releaseNameFlag, config.TagVar, fmt.Sprintf("release name template (%s and %s are substituted)", config.VersionVar, config.TagVar))
	rootCmd.Flags().String(releaseBodyFlag, "", "extra text prepended to the release body")
	rootCmd.Flags().Bool(autoNotesFlag, false, "let the platform generate release notes instead of a commit summary")
	rootCmd.Flags().Int(maxCommitsFlag, 50, "maximum number of commits summarized in the release body")
	rootCmd.Flags().String(commitOrderFlag, "desc", "commit summary ordering: desc (newest first) or asc")
	rootCmd.Flags().String(shaFlag, "", "target commit SHA (default: $GITHUB_SHA)")
	rootCmd.Flags().Bool(dryRunFlag, false, "compose the release without creating it")

	return rootCmd
}

// run executes the lookup -> decision -> publish flow and writes the
// step outputs. An intentional skip is a successful, zero-output run.
func run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	viper := config.Viper(ctx)

	provider := scm.Get(ctx, viper.GetString(config.GitProvider), viper.GetString(config.GitRepository))

	outputs, dec, err := release.Run(ctx, provider)
	if err != nil {
		return err
	}

	if dec.Skip {
		return nil
	}

	return output.Write(cmd.OutOrStdout(), map[string]string{
		"tag_name":   outputs.TagName,
		"version":    outputs.Version,
		"upload_url": outputs.UploadURL,
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := config.Init(context.Background())

	if err := RootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("release failed")
		os.Exit(1)
	}
}
