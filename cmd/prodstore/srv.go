package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"prodstore/internal/blobstore"
	"prodstore/internal/config"
	"prodstore/internal/server"
	"prodstore/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the prodstore API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := blobstore.NewLocalFS(cfg.BlobRoot)
			if err != nil {
				return err
			}

			srv := server.New(st, server.Options{
				Addr:    addr,
				DBPath:  cfg.DBPath,
				Version: version,
				Blobs:   bs,
				Uploads: cfg.Uploads,
				Logger:  logger,
			})
			return srv.ListenAndServe()
		},
	}
}
