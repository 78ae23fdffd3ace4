package main

import (
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"template"},
	Short:   "Manage index templates",
	Long: `Manage OpenSearch index templates for an environment.

Templates are stored locally as one YAML file per template under the
configured templates directory, in a subdirectory named after the
environment.

Examples:
  # List templates in the qa cluster
  keeper templates list --env qa

  # Download templates matching a glob
  keeper templates save --env qa --pattern "logs-*"

  # Review and publish local changes
  keeper templates publish --env prod

  # Publish without confirmation prompts
  keeper templates publish --env prod --force

  # Remove a template from the cluster
  keeper templates delete logs-legacy --env prod`,
}

var (
	templatesListFlags    entityFlags
	templatesSaveFlags    entityFlags
	templatesPublishFlags entityFlags
	templatesDeleteFlags  entityFlags
)

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List index templates in the cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(templateKind, templatesListFlags)
	},
}

var templatesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Download index templates to local files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSave(templateKind, templatesSaveFlags)
	},
}

var templatesPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish local index templates to the cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPublish(templateKind, templatesPublishFlags)
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an index template from the cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(templateKind, args[0], templatesDeleteFlags)
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd, templatesSaveCmd, templatesPublishCmd, templatesDeleteCmd)

	templatesListCmd.Flags().StringVarP(&templatesListFlags.env, "env", "e", "", "target environment (required)")
	templatesListCmd.Flags().StringVarP(&templatesListFlags.pattern, "pattern", "p", "", "glob pattern to filter template names")
	templatesListCmd.Flags().StringVarP(&templatesListFlags.format, "format", "f", "table", "output format: table, json, yaml")
	templatesListCmd.MarkFlagRequired("env")

	templatesSaveCmd.Flags().StringVarP(&templatesSaveFlags.env, "env", "e", "", "target environment (required)")
	templatesSaveCmd.Flags().StringVarP(&templatesSaveFlags.pattern, "pattern", "p", "", "glob pattern to filter template names")
	templatesSaveCmd.MarkFlagRequired("env")

	templatesPublishCmd.Flags().StringVarP(&templatesPublishFlags.env, "env", "e", "", "target environment (required)")
	templatesPublishCmd.Flags().StringVarP(&templatesPublishFlags.pattern, "pattern", "p", "", "glob pattern to filter template names")
	templatesPublishCmd.Flags().BoolVarP(&templatesPublishFlags.force, "force", "f", false, "apply all changes without confirmation")
	templatesPublishCmd.MarkFlagRequired("env")

	templatesDeleteCmd.Flags().StringVarP(&templatesDeleteFlags.env, "env", "e", "", "target environment (required)")
	templatesDeleteCmd.Flags().BoolVarP(&templatesDeleteFlags.force, "force", "f", false, "delete without confirmation")
	templatesDeleteCmd.MarkFlagRequired("env")
}
