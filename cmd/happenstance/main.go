package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/evcatalyst/happenstance/internal/aggregate"
	"github.com/evcatalyst/happenstance/internal/api"
	"github.com/evcatalyst/happenstance/internal/config"
	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/store"
)

var (
	cfgPath string
	profile string
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "happenstance",
		Short: "Pair local events with nearby restaurants into a regional feed",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "config profile name")

	rootCmd.AddCommand(aggregateCmd())
	rootCmd.AddCommand(pairingsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath, profile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func aggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Fetch data, build pairings, and write the JSON documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			result, err := aggregate.Run(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Aggregated %s for %s\n", aggregate.Describe(result), cfg.Region)
			fmt.Printf("Documents written to %s\n", cfg.DocsDir)
			printPairings(result.Meta.Pairings)
			return nil
		},
	}
}

func pairingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pairings",
		Short: "Show the pairings from the last aggregation run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			docs, err := store.NewDocs(cfg.DocsDir)
			if err != nil {
				return err
			}

			var meta aggregate.MetaPayload
			found, err := docs.Read(store.MetaDoc, &meta)
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("No documents yet. Run 'happenstance aggregate' first.")
				return nil
			}

			fmt.Printf("Run %s (%s, %s)\n", meta.RunID, meta.Region, meta.GeneratedAt)
			printPairings(meta.Pairings)
			return nil
		},
	}
}

func printPairings(pairings []domain.Pairing) {
	if len(pairings) == 0 {
		fmt.Println("No pairings produced.")
		return
	}
	for _, p := range pairings {
		restaurant := p.Restaurant
		if restaurant == "" {
			restaurant = "(no restaurant)"
		}
		line := fmt.Sprintf("  %s -> %s", p.Event, restaurant)
		if p.DistanceMiles != nil {
			line += fmt.Sprintf(" [%.1f mi]", *p.DistanceMiles)
		}
		fmt.Println(line)
		if p.MatchReason != "" {
			fmt.Printf("      %s\n", p.MatchReason)
		}
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated documents over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			docs, err := store.NewDocs(cfg.DocsDir)
			if err != nil {
				return err
			}

			server := api.New(docs, addr)
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("happenstance v0.1.0")
		},
	}
}
