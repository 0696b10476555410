package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/core/checker"
	"github.com/domaingen/domaingen/internal/core/engine"
	"github.com/domaingen/domaingen/internal/observability"
	"github.com/domaingen/domaingen/internal/output"
	"github.com/domaingen/domaingen/internal/server/handlers"
)

var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Generate candidate domains and check availability",
	Long: `Without a name, combine every stored prefix with every stored suffix and
check each combination under .com.br.

With a name, check that name under .com.br, .com, .net and .org.

Availability is a DNS approximation: a name that fails to resolve is reported
as available.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "table", "output format: table, json, markdown")
	generateCmd.Flags().Int("concurrency", 0, "parallel DNS lookups (overrides domain.concurrency)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outputFlag, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		cfg.Domain.Concurrency = n
	}

	generator := newGenerator(cfg, nil)

	if len(args) == 1 {
		return printCandidates(cmd, generator, format, args[0])
	}

	return withStore(cmd.Context(), func(db itemStore) error {
		generator.Items = db
		return printCandidates(cmd, generator, format, "")
	})
}

func newGenerator(cfg *config.Config, items engine.ItemSource) *engine.Generator {
	return &engine.Generator{
		Items:       items,
		Checker:     checker.NewDNSChecker(cfg.Domain.DNS, observability.CLILogger),
		Concurrency: cfg.Domain.Concurrency,
		Logger:      observability.CLILogger,
	}
}

func printCandidates(cmd *cobra.Command, generator handlers.DomainGenerator, format output.Format, name string) error {
	rendered, err := renderCandidates(cmd.Context(), generator, format, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// renderCandidates runs the single-name expansion when name is set and the
// full combination otherwise.
func renderCandidates(ctx context.Context, generator handlers.DomainGenerator, format output.Format, name string) (string, error) {
	if name != "" {
		candidates, err := generator.GenerateForName(ctx, name)
		if err != nil {
			return "", err
		}
		return output.NewFormatter(format).FormatCandidates(candidates)
	}

	candidates, err := generator.GenerateAll(ctx)
	if err != nil {
		return "", err
	}
	return output.NewFormatter(format).FormatCandidates(candidates)
}
