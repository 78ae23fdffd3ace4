package main

import (
	"github.com/spf13/cobra"
)

var policiesCmd = &cobra.Command{
	Use:     "ism-policies",
	Aliases: []string{"ism-policy", "policies"},
	Short:   "Manage ISM policies",
	Long: `Manage OpenSearch Index State Management policies for an environment.

Policies are stored locally as one YAML file per policy under the configured
ISM policies directory, in a subdirectory named after the environment. Server
bookkeeping fields (last_updated_time, schema_version, sequence numbers) are
stripped on download so local files stay stable and diffs stay meaningful.

Policy updates are conditioned on the sequence number captured when the
remote policy was read; a concurrent modification fails the update instead of
overwriting it.

Examples:
  # List policies in the qa cluster
  keeper ism-policies list --env qa

  # Download all policies
  keeper ism-policies save --env qa

  # Review and publish local changes
  keeper ism-policies publish --env prod

  # Remove a policy from the cluster
  keeper ism-policies delete retention-30d --env prod`,
}

var (
	policiesListFlags    entityFlags
	policiesSaveFlags    entityFlags
	policiesPublishFlags entityFlags
	policiesDeleteFlags  entityFlags
)

var policiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ISM policies in the cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(policyKind, policiesListFlags)
	},
}

var policiesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Download ISM policies to local files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSave(policyKind, policiesSaveFlags)
	},
}

var policiesPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish local ISM policies to the cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPublish(policyKind, policiesPublishFlags)
	},
}

var policiesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an ISM policy from the cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(policyKind, args[0], policiesDeleteFlags)
	},
}

func init() {
	rootCmd.AddCommand(policiesCmd)
	policiesCmd.AddCommand(policiesListCmd, policiesSaveCmd, policiesPublishCmd, policiesDeleteCmd)

	policiesListCmd.Flags().StringVarP(&policiesListFlags.env, "env", "e", "", "target environment (required)")
	policiesListCmd.Flags().StringVarP(&policiesListFlags.pattern, "pattern", "p", "", "glob pattern to filter policy names")
	policiesListCmd.Flags().StringVarP(&policiesListFlags.format, "format", "f", "table", "output format: table, json, yaml")
	policiesListCmd.MarkFlagRequired("env")

	policiesSaveCmd.Flags().StringVarP(&policiesSaveFlags.env, "env", "e", "", "target environment (required)")
	policiesSaveCmd.Flags().StringVarP(&policiesSaveFlags.pattern, "pattern", "p", "", "glob pattern to filter policy names")
	policiesSaveCmd.MarkFlagRequired("env")

	policiesPublishCmd.Flags().StringVarP(&policiesPublishFlags.env, "env", "e", "", "target environment (required)")
	policiesPublishCmd.Flags().StringVarP(&policiesPublishFlags.pattern, "pattern", "p", "", "glob pattern to filter policy names")
	policiesPublishCmd.Flags().BoolVarP(&policiesPublishFlags.force, "force", "f", false, "apply all changes without confirmation")
	policiesPublishCmd.MarkFlagRequired("env")

	policiesDeleteCmd.Flags().StringVarP(&policiesDeleteFlags.env, "env", "e", "", "target environment (required)")
	policiesDeleteCmd.Flags().BoolVarP(&policiesDeleteFlags.force, "force", "f", false, "delete without confirmation")
	policiesDeleteCmd.MarkFlagRequired("env")
}
