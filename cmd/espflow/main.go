// Command espflow runs the fifteen-step SendPost workflow: sub-accounts,
// webhooks, sending domains, transactional and marketing sends, message
// lookup, statistics, IPs, and IP pools.
//
// Credentials come from SENDPOST_ACCOUNT_API_KEY and
// SENDPOST_SUB_ACCOUNT_API_KEY (a .env file is honored). Without them
// the workflow still runs every step against placeholder keys, printing
// each rejection, so the output shape can be inspected before any real
// key exists.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	sendpost "github.com/sendpost/sendpost-go"
	"github.com/sendpost/sendpost-go/espflow"
)

const (
	accountKeyEnv    = "SENDPOST_ACCOUNT_API_KEY"
	subAccountKeyEnv = "SENDPOST_SUB_ACCOUNT_API_KEY"

	accountKeyPlaceholder    = "YOUR_ACCOUNT_API_KEY_HERE"
	subAccountKeyPlaceholder = "YOUR_SUB_ACCOUNT_API_KEY_HERE"
)

var (
	configPath  string
	interactive bool
	noColor     bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "path to a YAML workflow config")
	flag.BoolVar(&interactive, "interactive", false, "choose step groups from a menu")
	flag.BoolVar(&noColor, "no-color", false, "disable colored output")
	flag.Parse()
}

func main() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	cfg := espflow.DefaultConfig()
	if configPath != "" {
		loaded, err := espflow.LoadConfig(configPath)
		if err != nil {
			log.Fatal("failed to load workflow config", "error", err)
		}
		cfg = loaded
		log.Info("loaded workflow config", "path", configPath)
	}

	accountKey := envOr(accountKeyEnv, accountKeyPlaceholder)
	subAccountKey := envOr(subAccountKeyEnv, subAccountKeyPlaceholder)
	if accountKey == accountKeyPlaceholder {
		log.Warn("account API key not set, steps will fail until it is", "env", accountKeyEnv)
	}
	if subAccountKey == subAccountKeyPlaceholder {
		log.Warn("sub-account API key not set, steps will fail until it is", "env", subAccountKeyEnv)
	}

	var clientOpts []sendpost.Option
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, sendpost.WithBaseURL(cfg.BaseURL))
		log.Info("using custom base URL", "url", cfg.BaseURL)
	}

	client, err := sendpost.New(accountKey, clientOpts...)
	if err != nil {
		log.Fatal("failed to build client", "error", err)
	}
	defer client.Close()

	runnerOpts := []espflow.RunnerOption{espflow.WithSubAccountKey(subAccountKey)}
	if noColor {
		runnerOpts = append(runnerOpts, espflow.WithoutColor())
	}
	runner := espflow.NewRunner(client, cfg, runnerOpts...)

	ctx := context.Background()
	if interactive {
		runMenu(ctx, runner)
		return
	}
	runner.Run(ctx)
}

// runMenu loops a select prompt until the user quits. Groups keep their
// workflow step numbers, and session state carries across selections so
// a sub-account created in one group is reused by the next.
func runMenu(ctx context.Context, runner *espflow.Runner) {
	const (
		optComplete = "Run complete workflow"
		optQuit     = "Quit"
	)

	groups := espflow.Groups()
	options := make([]string, 0, len(groups)+2)
	options = append(options, optComplete)
	for _, g := range groups {
		options = append(options, string(g))
	}
	options = append(options, optQuit)

	for {
		var choice string
		prompt := &survey.Select{
			Message: "Select a workflow to run:",
			Options: options,
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			log.Error("menu prompt failed", "error", err)
			return
		}

		switch choice {
		case optComplete:
			runner.Run(ctx)
		case optQuit:
			return
		default:
			runner.RunGroup(ctx, espflow.Group(choice))
		}
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
