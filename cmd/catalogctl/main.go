// catalogctl is a small operator CLI over the pricing catalog pipeline:
// fetch and inspect the catalog without running the daemon.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"catalogd/internal/catalog"
	"catalogd/internal/service"
	"catalogd/internal/sitemap"
	"catalogd/internal/source"
)

var (
	flagURL  string
	flagFile string
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect the LLM pricing catalog from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagURL, "url", "", "Upstream pricing JSON URL (defaults to the published dataset)")
	root.PersistentFlags().StringVar(&flagFile, "file", "", "Read the pricing document from a local file")

	root.AddCommand(fetchCmd(), modelsCmd(), providersCmd(), statsCmd(), sitemapCmd())
	return root
}

func load(ctx context.Context) (*catalog.Catalog, int, error) {
	var src service.Source
	if flagFile != "" {
		src = source.File{Path: flagFile}
	} else {
		src = source.NewClient(flagURL)
	}
	doc, err := src.Fetch(ctx)
	if err != nil {
		return nil, 0, err
	}
	return catalog.Build(doc), len(doc.Keys), nil
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fetch",
		Short:   "Fetch the pricing document and summarize the pipeline result",
		Example: "  catalogctl fetch\n  catalogctl fetch --file prices.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			cat, rawEntries, err := load(ctx)
			if err != nil {
				return err
			}
			bold := color.New(color.Bold).SprintFunc()
			fmt.Printf("%s %d\n", bold("raw entries:"), rawEntries)
			fmt.Printf("%s  %d\n", bold("models kept:"), len(cat.Models))
			fmt.Printf("%s   %d\n", bold("providers:"), len(cat.Providers))
			fmt.Printf("%s       %v\n", bold("modes:"), cat.Modes)
			return nil
		},
	}
}

func modelsCmd() *cobra.Command {
	var provider, mode, capability, query string
	cmd := &cobra.Command{
		Use:     "models",
		Short:   "List catalog models, optionally filtered",
		Example: "  catalogctl models --provider openai\n  catalogctl models --capability supports_vision",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			cat, _, err := load(ctx)
			if err != nil {
				return err
			}
			models := cat.Models
			switch {
			case query != "":
				models = cat.Search(query, provider)
			case provider != "":
				models = cat.FilterByProvider(provider)
			}
			if mode != "" {
				kept := models[:0:0]
				for _, m := range models {
					if m.Data.Mode == mode {
						kept = append(kept, m)
					}
				}
				models = kept
			}
			if capability != "" {
				if !catalog.IsKnownCapability(capability) {
					return fmt.Errorf("unknown capability %q (known: %v)", capability, catalog.CapabilityNames)
				}
				kept := models[:0:0]
				for _, m := range models {
					if catalog.HasCapability(m.Data, capability) {
						kept = append(kept, m)
					}
				}
				models = kept
			}
			cyan := color.New(color.FgCyan).SprintFunc()
			for _, m := range models {
				fmt.Printf("%-42s %-14s %-28s in=%s out=%s\n",
					cyan(m.Slug), m.Data.Mode, m.Provider,
					perMillion(m.Data.InputCostPerToken), perMillion(m.Data.OutputCostPerToken))
			}
			fmt.Printf("%d models\n", len(models))
			return nil
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "Exact provider key")
	cmd.Flags().StringVar(&mode, "mode", "", "Exact mode (chat, embedding, ...)")
	cmd.Flags().StringVar(&capability, "capability", "", "Capability flag name, e.g. supports_vision")
	cmd.Flags().StringVar(&query, "q", "", "Case-insensitive substring search")
	return cmd
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers present in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			cat, _, err := load(ctx)
			if err != nil {
				return err
			}
			green := color.New(color.FgGreen).SprintFunc()
			for _, p := range cat.Providers {
				fmt.Printf("%-34s %-32s %d models\n", green(p), catalog.FormatProviderName(p), len(cat.ByProvider[p]))
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Per-provider model counts and average costs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			cat, _, err := load(ctx)
			if err != nil {
				return err
			}
			bold := color.New(color.Bold).SprintFunc()
			fmt.Printf("%-34s %6s %14s %14s\n", bold("provider"), "models", "avg in/1M", "avg out/1M")
			for _, s := range cat.ProviderStats() {
				fmt.Printf("%-34s %6d %14s %14s\n", s.Name, s.Count,
					avgPerMillion(s.AvgInputCostPerToken), avgPerMillion(s.AvgOutputCostPerToken))
			}
			return nil
		},
	}
}

func sitemapCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:     "sitemap <file>",
		Short:   "Rewrite sitemap XML loc URLs from one host to another",
		Args:    cobra.ExactArgs(1),
		Example: "  catalogctl sitemap --from https://cms.example.com --to https://www.example.com sitemap.xml",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			out, err := sitemap.RewriteHost(b, from, to)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source URL prefix to replace")
	cmd.Flags().StringVar(&to, "to", "", "Replacement URL prefix")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// perMillion renders a per-token cost as USD per million tokens, "—" when
// the model does not publish one.
func perMillion(c *float64) string {
	if c == nil {
		return "—"
	}
	return fmt.Sprintf("$%.2f", *c*1e6)
}

func avgPerMillion(c float64) string {
	if c == 0 {
		return "—"
	}
	return fmt.Sprintf("$%.2f", c*1e6)
}
