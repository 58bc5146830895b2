// Package commands implements the seekrctl command tree.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/seekr/internal/version"
)

// Root returns the seekrctl root command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "seekrctl",
		Usage:   "Manage and query the seekr product index",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "environment name; selects config/<env>.yaml",
				Value:   "local",
				Sources: cli.EnvVars("ENV"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file loaded before the config (missing file is ignored)",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "explicit config file path (overrides --env lookup)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "ensure-index",
				Usage:  "Create the products index if it does not exist",
				Action: EnsureIndexAction,
			},
			{
				Name:   "seed",
				Usage:  "Index sample products",
				Action: SeedAction,
			},
			{
				Name:      "search",
				Usage:     "Full-text search with filters",
				ArgsUsage: "[query]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "brand", Usage: "exact brand"},
					&cli.StringFlag{Name: "color", Usage: "exact color"},
					&cli.StringFlag{Name: "product-size", Usage: "exact product size"},
					&cli.StringFlag{Name: "category", Usage: "exact category"},
					&cli.StringFlag{Name: "condition", Usage: "exact condition"},
					&cli.StringSliceFlag{Name: "tag", Usage: "tag filter (repeatable)"},
					&cli.FloatFlag{Name: "min-price", Usage: "minimum price"},
					&cli.FloatFlag{Name: "max-price", Usage: "maximum price"},
					&cli.FloatFlag{Name: "min-rating", Usage: "minimum rating"},
					&cli.IntFlag{Name: "page", Usage: "1-based page number"},
					&cli.IntFlag{Name: "size", Usage: "page size"},
					&cli.StringFlag{Name: "sort", Usage: "tiebreak: popularity or recency"},
				},
				Action: SearchAction,
			},
			{
				Name:      "suggest",
				Usage:     "Title autocomplete",
				ArgsUsage: "<prefix>",
				Action:    SuggestAction,
			},
			{
				Name:      "get",
				Usage:     "Fetch a document by id",
				ArgsUsage: "<id>",
				Action:    GetAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a document by id",
				ArgsUsage: "<id>",
				Action:    DeleteAction,
			},
			{
				Name:      "recommend",
				Usage:     "Documents similar to <id>, or personalized with --user",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "maximum number of recommendations"},
					&cli.StringFlag{Name: "user", Usage: "user id for personalized recommendations"},
				},
				Action: RecommendAction,
			},
		},
	}
}
