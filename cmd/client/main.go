// Command client is a small CLI for the sync server. It keeps a local
// JSON snapshot file (payload plus the server version it corresponds to)
// and can push, pull, inspect, or delete the server copy, or watch the
// snapshot and push it on an interval.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/adapter"
	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sync-client")

	var (
		serverURL    string
		secretKey    string
		snapshotPath string
		interval     time.Duration
	)

	fs := flag.NewFlagSet("sync-client", flag.ExitOnError)
	fs.StringVar(&serverURL, "server", "http://localhost:3001", "sync server base URL")
	fs.StringVar(&secretKey, "key", os.Getenv("SYNC_SECRET_KEY"), "shared secret key")
	fs.StringVar(&snapshotPath, "file", "snapshot.json", "local snapshot file")
	fs.DurationVar(&interval, "interval", 5*time.Minute, "push interval for watch mode")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: sync-client [flags] push|pull|status|delete|health|watch\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	command := fs.Arg(0)
	if command == "" {
		fs.Usage()
		os.Exit(2)
	}
	if command != "health" && len(secretKey) < config.DefaultMinSecretKeyLength {
		log.Fatal().Msgf("a secret key of at least %d characters is required (-key or SYNC_SECRET_KEY)", config.DefaultMinSecretKeyLength)
	}

	client := adapter.NewHTTPSyncClient(adapter.HTTPClientConfig{
		BaseURL:   serverURL,
		SecretKey: secretKey,
	})

	ctx := context.Background()
	var err error
	switch command {
	case "push":
		err = runPush(ctx, client, snapshotPath)
	case "pull":
		err = runPull(ctx, client, snapshotPath)
	case "status":
		err = runStatus(ctx, client)
	case "delete":
		err = runDelete(ctx, client)
	case "health":
		err = runHealth(ctx, client)
	case "watch":
		workers.NewWorkers(client, config.Workers{SyncInterval: interval}, snapshotPath, log).Run()
	default:
		fs.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

func runPush(ctx context.Context, client adapter.SyncClient, snapshotPath string) error {
	snap, err := workers.LoadSnapshot(snapshotPath)
	if err != nil {
		return err
	}
	if len(snap.Data) == 0 {
		return fmt.Errorf("no local snapshot at %s", snapshotPath)
	}

	resp, err := client.Push(ctx, snap.Data, snap.Version)
	if errors.Is(err, adapter.ErrConflict) {
		fmt.Printf("Conflict: server is at version %d, local snapshot is at %d.\n", resp.Version, snap.Version)
		fmt.Println("Run 'pull' to fetch the server copy, merge, and push again.")
		return nil
	}
	if err != nil {
		return err
	}

	snap.Version = resp.Version
	snap.LastSync = resp.LastSync
	if err := workers.SaveSnapshot(snapshotPath, snap); err != nil {
		return err
	}

	fmt.Printf("Pushed version %d.\n", resp.Version)
	return nil
}

func runPull(ctx context.Context, client adapter.SyncClient, snapshotPath string) error {
	snap, err := workers.LoadSnapshot(snapshotPath)
	if err != nil {
		return err
	}

	resp, err := client.Pull(ctx, snap.Version)
	if errors.Is(err, adapter.ErrNotFound) {
		fmt.Println("Nothing stored on the server for this key.")
		return nil
	}
	if err != nil {
		return err
	}

	if resp.Data == nil {
		fmt.Printf("Already up to date at version %d.\n", resp.Version)
		return nil
	}

	snap.Data = resp.Data
	snap.Version = resp.Version
	snap.LastSync = resp.LastSync
	if err := workers.SaveSnapshot(snapshotPath, snap); err != nil {
		return err
	}

	fmt.Printf("Pulled version %d into %s.\n", resp.Version, snapshotPath)
	return nil
}

func runStatus(ctx context.Context, client adapter.SyncClient) error {
	status, err := client.Status(ctx)
	if errors.Is(err, adapter.ErrNotFound) {
		fmt.Println("Nothing stored on the server for this key.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Server has version %d", status.Version)
	if status.LastSync != nil {
		fmt.Printf(", last synced %s", status.LastSync.Format(time.RFC3339))
	}
	fmt.Println(".")
	return nil
}

func runDelete(ctx context.Context, client adapter.SyncClient) error {
	resp, err := client.Delete(ctx)
	if errors.Is(err, adapter.ErrNotFound) {
		fmt.Println("Nothing stored on the server for this key.")
		return nil
	}
	if err != nil {
		return err
	}

	if resp.Success {
		fmt.Println("Server copy deleted.")
	}
	return nil
}

func runHealth(ctx context.Context, client adapter.SyncClient) error {
	report, err := client.Health(ctx)
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
