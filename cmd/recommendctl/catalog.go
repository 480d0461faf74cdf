package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recommend-backend/internal/catalog"
	"recommend-backend/internal/shared/config"
	"recommend-backend/internal/shared/storage/object"
	localstore "recommend-backend/internal/shared/storage/object/local"
	s3store "recommend-backend/internal/shared/storage/object/s3"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage catalogs in the configured object store",
	}
	cmd.AddCommand(newCatalogPushCmd(), newCatalogListCmd())
	return cmd
}

func newCatalogPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <domain> <file>",
		Short: "Validate a catalog file and upload it as <domain>.json",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := objectRepo(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			items, err := catalog.Decode(f)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[1], err)
			}
			if err := repo.Save(cmd.Context(), args[0], items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d items to %s\n", len(items), args[0])
			return nil
		},
	}
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog domains in the object store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := objectRepo(cmd.Context())
			if err != nil {
				return err
			}
			domains, err := repo.Domains(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range domains {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}

func objectRepo(ctx context.Context) (*catalog.ObjectRepo, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	var store object.ObjectStore
	if cfg.ObjectStoreType == "s3" {
		store, err = s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, err
		}
	} else {
		store = localstore.New(cfg.LocalStoreDir)
	}
	return catalog.NewObjectRepo(store), nil
}
