package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/wallet/internal/api"
	"github.com/mtlprog/wallet/internal/config"
	"github.com/mtlprog/wallet/internal/database"
	"github.com/mtlprog/wallet/internal/exchange"
	"github.com/mtlprog/wallet/internal/export"
	"github.com/mtlprog/wallet/internal/horizon"
	"github.com/mtlprog/wallet/internal/snapshot"
	"github.com/mtlprog/wallet/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "wallet",
		Usage: "Stellar account state service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the sync worker and HTTP API",
				Action: runServe,
			},
			{
				Name:   "snapshot",
				Usage:  "refresh all tracked accounts once and persist snapshots",
				Action: runSnapshot,
			},
			{
				Name:  "export",
				Usage: "refresh tracked accounts and export statements",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "write an XLSX workbook to `PATH` instead of Google Sheets",
					},
				},
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func connectAndMigrate(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return pool, nil
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, err := connectAndMigrate(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	horizonClient := horizon.NewClient(cfg.HorizonURL, cfg.HorizonRetryMax, cfg.HorizonRetryBaseDelay)
	snapshotSvc := snapshot.NewService(snapshot.NewPgRepository(pool))
	syncer := worker.NewSyncer(horizonClient, snapshotSvc, cfg.TrackedAccounts, cfg.SyncInterval)

	go syncer.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, refresh endpoint is unprotected")
	}

	exchanges := exchange.NewDirectory(exchange.DefaultEntries)
	srv := api.NewServer(cfg.HTTPPort, api.NewHandler(syncer, horizonClient, exchanges), cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runSnapshot(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if len(cfg.TrackedAccounts) == 0 {
		return fmt.Errorf("TRACKED_ACCOUNTS is required")
	}

	pool, err := connectAndMigrate(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	horizonClient := horizon.NewClient(cfg.HorizonURL, cfg.HorizonRetryMax, cfg.HorizonRetryBaseDelay)
	snapshotSvc := snapshot.NewService(snapshot.NewPgRepository(pool))
	syncer := worker.NewSyncer(horizonClient, snapshotSvc, cfg.TrackedAccounts, cfg.SyncInterval)

	for _, id := range cfg.TrackedAccounts {
		account, err := syncer.Refresh(ctx, id)
		if err != nil {
			return fmt.Errorf("refreshing account %s: %w", id, err)
		}
		if account.IsStub() {
			slog.Warn("skipping unfunded account", "account", id)
			continue
		}
		if err := snapshotSvc.Save(ctx, account); err != nil {
			return fmt.Errorf("saving snapshot for %s: %w", id, err)
		}
		slog.Info("snapshot saved", "account", id)
	}
	return nil
}

func runExport(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if len(cfg.TrackedAccounts) == 0 {
		return fmt.Errorf("TRACKED_ACCOUNTS is required")
	}

	var writer export.StatementWriter
	if out := c.String("out"); out != "" {
		writer = export.NewXLSXWriter(out)
	} else {
		if cfg.SheetsSpreadsheetID == "" || cfg.SheetsCredentialsJSON == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID and SHEETS_CREDENTIALS_JSON are required without --out")
		}
		sheetsWriter, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		writer = sheetsWriter
	}

	horizonClient := horizon.NewClient(cfg.HorizonURL, cfg.HorizonRetryMax, cfg.HorizonRetryBaseDelay)
	syncer := worker.NewSyncer(horizonClient, nil, cfg.TrackedAccounts, cfg.SyncInterval)

	for _, id := range cfg.TrackedAccounts {
		if _, err := syncer.Refresh(ctx, id); err != nil {
			return fmt.Errorf("refreshing account %s: %w", id, err)
		}
	}

	return export.NewService(syncer, writer).Export(ctx)
}
