package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"searchops/keeper/pkg/cli"
	"searchops/keeper/pkg/config"
)

var environmentsFlags struct {
	format string
}

var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Aliases: []string{"envs"},
	Short:   "List configured environments",
	Long: `List the cluster environments defined in the configuration file,
with their connection settings. Credentials are never printed.`,
	RunE: listEnvironments,
}

func init() {
	rootCmd.AddCommand(environmentsCmd)

	environmentsCmd.Flags().StringVarP(&environmentsFlags.format, "format", "f", "table", "output format: table, json, yaml")
}

// environmentListing is the structured-output shape of one environment.
// Credentials stay out of it.
type environmentListing struct {
	Name   string `json:"name" yaml:"name"`
	Host   string `json:"host" yaml:"host"`
	Port   int    `json:"port" yaml:"port"`
	UseSSL bool   `json:"use_ssl" yaml:"use_ssl"`
	Auth   string `json:"auth" yaml:"auth"`
}

func listEnvironments(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(environmentsFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rows := make([]environmentListing, 0, len(cfg.Environments))
	for _, name := range cfg.EnvironmentNames() {
		env := cfg.Environments[name]
		rows = append(rows, environmentListing{
			Name:   name,
			Host:   env.Host,
			Port:   env.Port,
			UseSSL: env.UseSSL != nil && *env.UseSSL,
			Auth:   authKind(env),
		})
	}

	if format == cli.FormatTable {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tHOST\tPORT\tSSL\tAUTH")
		for _, row := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%s\n", row.Name, row.Host, row.Port, row.UseSSL, row.Auth)
		}
		return tw.Flush()
	}

	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatTo(os.Stdout, rows)
}

func authKind(env config.Environment) string {
	switch {
	case env.AWSAuth != nil:
		return "aws"
	case env.BasicAuth != nil:
		return "basic"
	default:
		return "none"
	}
}
