package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/config"
	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository/catalog"
	"github.com/Harsh-BH/gauntlet/internal/templates"
)

func (c *cli) newSyncWrappersCmd() *cobra.Command {
	var (
		catalogPath string
		backend     string
		location    string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "sync-wrappers",
		Short: "Copy every wrapper in the catalog into a local or S3 template store",
		Example: `  stubgen sync-wrappers --catalog problems.yaml --backend local --location ./wrappers
  stubgen sync-wrappers --catalog problems.yaml --backend s3 --location my-bucket`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}

			var store templates.Store
			if !dryRun {
				if store, err = templates.New(ctx, backend, location); err != nil {
					return err
				}
			}

			problems, err := cat.List(ctx)
			if err != nil {
				return err
			}

			written := 0
			for _, p := range problems {
				for _, lang := range domain.Languages() {
					wrapper, err := cat.GetWrapper(ctx, p.ID, lang)
					if errors.Is(err, domain.ErrWrapperNotFound) {
						continue
					}
					if err != nil {
						return err
					}

					key, err := templates.Key(p.ID, lang)
					if err != nil {
						return err
					}
					if !dryRun {
						if err := store.PutWrapper(ctx, p.ID, lang, wrapper); err != nil {
							return fmt.Errorf("put %s: %w", key, err)
						}
					}
					c.logger.Debug("Wrapper synced", zap.String("key", key), zap.Bool("dry_run", dryRun))
					fmt.Fprintln(cmd.OutOrStdout(), key)
					written++
				}
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%d wrappers from %d problems\n", written, len(problems))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "./problems.yaml", "Problem catalog YAML")
	cmd.Flags().StringVar(&backend, "backend", config.SourceLocal, "Template store backend: local or s3")
	cmd.Flags().StringVar(&location, "location", "./wrappers", "Directory (local) or bucket name (s3)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the keys without writing")
	return cmd
}
