/*
Package cli provides command-line interface utilities for keeper.

The cli package includes output formatters, interactive confirmation prompts,
and common CLI helpers used by the keeper command.

Output Formatting:

Structured output formats (JSON, YAML) share a Formatter; tabular output is
rendered directly by the commands:

	formatter, err := cli.NewFormatter(cli.FormatJSON)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Confirmation Prompts:

Destructive or cluster-mutating operations ask before proceeding:

	if !cli.Confirm(os.Stdin, os.Stdout, "Publish template logs-app?") {
		return nil
	}

Signal Handling:

For cancelling in-flight cluster calls on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Pass ctx to operations that should stop on interrupt
*/
package cli
