package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/fetch"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download reference tables from the configured mirrors",
	Long:  "Fetches the cases CSV (and, when configured, the element table) over HTTP or FTP into the local data paths. A missing element mirror is not fatal; the tool degrades to the no-element-data state.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Sync.CasesURL == "" {
			return eris.New("sync: cases URL is required (CORRIDOR_SYNC_CASES_URL)")
		}

		timeout := time.Duration(cfg.Sync.TimeoutSecs) * time.Second
		httpF := fetch.NewHTTPFetcher(fetch.HTTPOptions{
			Timeout:    timeout,
			RatePerSec: cfg.Sync.RatePerSec,
		})
		ftpF := fetch.NewFTPFetcher(fetch.FTPOptions{Timeout: timeout})

		f, err := fetch.ForURL(cfg.Sync.CasesURL, httpF, ftpF)
		if err != nil {
			return err
		}
		n, err := fetch.DownloadToFile(ctx, f, cfg.Sync.CasesURL, cfg.Data.CasesPath)
		if err != nil {
			return eris.Wrap(err, "sync cases")
		}
		zap.L().Info("cases table synced",
			zap.String("url", cfg.Sync.CasesURL),
			zap.String("path", cfg.Data.CasesPath),
			zap.Int64("bytes", n),
		)

		if cfg.Sync.ElementsURL == "" {
			return nil
		}

		f, err = fetch.ForURL(cfg.Sync.ElementsURL, httpF, ftpF)
		if err == nil {
			n, err = fetch.DownloadToFile(ctx, f, cfg.Sync.ElementsURL, cfg.Data.ElementsPath)
		}
		if err != nil {
			// Secondary table: log and continue without it.
			zap.L().Warn("element table sync failed",
				zap.String("url", cfg.Sync.ElementsURL),
				zap.Error(err),
			)
			return nil
		}
		zap.L().Info("element table synced",
			zap.String("url", cfg.Sync.ElementsURL),
			zap.String("path", cfg.Data.ElementsPath),
			zap.Int64("bytes", n),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
