package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	opensearchgo "github.com/opensearch-project/opensearch-go/v2"
	"searchops/keeper/pkg/cli"
	"searchops/keeper/pkg/config"
	"searchops/keeper/pkg/document"
	"searchops/keeper/pkg/keeper"
	"searchops/keeper/pkg/opensearch"
)

// entityKind binds one entity family (index templates, ISM policies) to its
// remote store constructor and its local directory. The subcommand runners
// below are shared across kinds; all other behavior lives in pkg/keeper.
type entityKind struct {
	singular string
	plural   string

	newRemote func(client *opensearchgo.Client, logger *slog.Logger) keeper.Remote
	localDir  func(cfg *config.Config, env string) string

	renderTable func(entities []keeper.Entity) error
}

var templateKind = entityKind{
	singular: "template",
	plural:   "templates",
	newRemote: func(client *opensearchgo.Client, logger *slog.Logger) keeper.Remote {
		return keeper.NewTemplateStore(client, logger)
	},
	localDir: func(cfg *config.Config, env string) string {
		return cfg.TemplatesPath(env)
	},
	renderTable: func(entities []keeper.Entity) error {
		return renderTemplateTable(os.Stdout, entities)
	},
}

var policyKind = entityKind{
	singular: "ISM policy",
	plural:   "ism-policies",
	newRemote: func(client *opensearchgo.Client, logger *slog.Logger) keeper.Remote {
		return keeper.NewPolicyStore(client, logger)
	},
	localDir: func(cfg *config.Config, env string) string {
		return cfg.ISMPoliciesPath(env)
	},
	renderTable: func(entities []keeper.Entity) error {
		return renderPolicyTable(os.Stdout, entities)
	},
}

// entityFlags is the flag set shared by the per-kind subcommands.
type entityFlags struct {
	env     string
	pattern string
	format  string
	force   bool
}

// clusterConfig maps an environment entry onto cluster connection settings.
// The config loader guarantees the boolean pointers are set.
func clusterConfig(env config.Environment) opensearch.Config {
	cfg := opensearch.Config{
		Host:         env.Host,
		Port:         env.Port,
		MaxRetries:   env.MaxRetries,
		DisableRetry: env.DisableRetry,
	}
	if env.UseSSL != nil {
		cfg.UseSSL = *env.UseSSL
	}
	if env.VerifyCerts != nil {
		cfg.VerifyCerts = *env.VerifyCerts
	}
	if env.BasicAuth != nil {
		cfg.BasicAuth = &opensearch.BasicAuth{
			Username: env.BasicAuth.Username,
			Password: env.BasicAuth.Password,
		}
	}
	if env.AWSAuth != nil {
		cfg.AWSAuth = &opensearch.AWSAuth{
			Region:  env.AWSAuth.Region,
			Service: env.AWSAuth.Service,
		}
	}
	if env.Proxy != nil {
		cfg.Proxy = &opensearch.Proxy{
			Host:     env.Proxy.Host,
			Port:     env.Proxy.Port,
			Username: env.Proxy.Username,
			Password: env.Proxy.Password,
		}
	}
	return cfg
}

// buildReconciler connects to the named environment and assembles the
// reconciler for one entity kind.
func buildReconciler(ctx context.Context, cfg *config.Config, envName string, kind entityKind, logger *slog.Logger) (*keeper.Reconciler, error) {
	env, err := cfg.Environment(envName)
	if err != nil {
		return nil, err
	}

	client, err := opensearch.New(ctx, clusterConfig(env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to environment %q: %w", envName, err)
	}
	logger.Debug("connected to environment", "environment", envName, "host", env.Host)

	local, err := keeper.NewDirStore(kind.localDir(cfg, envName))
	if err != nil {
		return nil, err
	}

	return keeper.NewReconciler(kind.newRemote(client, logger), local, cfg.IgnorePatterns, logger), nil
}

// setup performs the shared preamble of every entity subcommand: signal-aware
// context, config, logger, reconciler.
func setup(kind entityKind, envName string) (context.Context, *keeper.Reconciler, error) {
	ctx := cli.SetupSignalHandler()

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	rec, err := buildReconciler(ctx, cfg, envName, kind, logger)
	if err != nil {
		return nil, nil, err
	}
	return ctx, rec, nil
}

func runList(kind entityKind, flags entityFlags) error {
	format, err := cli.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	ctx, rec, err := setup(kind, flags.env)
	if err != nil {
		return err
	}

	entities, err := rec.List(ctx, flags.pattern)
	if err != nil {
		return cli.NewCommandError(kind.plural+" list", err)
	}

	if format == cli.FormatTable {
		return kind.renderTable(entities)
	}
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatTo(os.Stdout, listings(entities))
}

func runSave(kind entityKind, flags entityFlags) error {
	ctx, rec, err := setup(kind, flags.env)
	if err != nil {
		return err
	}

	saved, err := rec.Save(ctx, flags.pattern)
	if err != nil {
		return cli.NewCommandError(kind.plural+" save", err)
	}

	for _, file := range saved {
		fmt.Printf("saved %s\n", file)
	}
	fmt.Printf("%d %s saved\n", len(saved), kind.plural)
	return nil
}

func runPublish(kind entityKind, flags entityFlags) error {
	ctx, rec, err := setup(kind, flags.env)
	if err != nil {
		return err
	}

	opts := keeper.PublishOptions{Force: flags.force}
	if !flags.force {
		opts.Confirm = func(name string, changes document.ChangeSet) bool {
			fmt.Printf("\nChanges for %s %q:\n%s\n", kind.singular, name, changes.String())
			return cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Publish %s %q to %s?", kind.singular, name, flags.env))
		}
	}

	results, err := rec.Publish(ctx, flags.pattern, opts)
	if err != nil {
		return cli.NewCommandError(kind.plural+" publish", err)
	}

	printResults(os.Stdout, results)
	summary := keeper.Summarize(results)
	printSummary(os.Stdout, summary)

	if summary.Failed > 0 {
		return cli.NewCommandError(kind.plural+" publish",
			fmt.Errorf("%d of %d entities failed", summary.Failed, len(results)))
	}
	return nil
}

func runDelete(kind entityKind, name string, flags entityFlags) error {
	ctx, rec, err := setup(kind, flags.env)
	if err != nil {
		return err
	}

	if !flags.force {
		question := fmt.Sprintf("Delete %s %q from %s?", kind.singular, name, flags.env)
		if !cli.Confirm(os.Stdin, os.Stdout, question) {
			fmt.Println("aborted")
			return nil
		}
	}

	if err := rec.Delete(ctx, name); err != nil {
		if errors.Is(err, keeper.ErrNotFound) {
			return cli.NewCommandError(kind.plural+" delete",
				fmt.Errorf("%s %q not found in environment %q", kind.singular, name, flags.env))
		}
		return cli.NewCommandError(kind.plural+" delete", err)
	}
	fmt.Printf("deleted %s %q\n", kind.singular, name)
	return nil
}
