package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mwork/photobackup/internal/config"
	"github.com/mwork/photobackup/internal/domain/backup"
	"github.com/mwork/photobackup/internal/domain/transfer"
	"github.com/mwork/photobackup/internal/pkg/logger"
	"github.com/mwork/photobackup/internal/pkg/ui"
	"github.com/mwork/photobackup/internal/pkg/vk"
)

// errItemsFailed makes the process exit non-zero when some photos were not
// transferred. The details are already printed by then.
var errItemsFailed = errors.New("some photos were not uploaded")

type flags struct {
	user        string
	tokens      string
	folder      string
	count       int
	album       string
	destination string
	metadata    string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "photobackup",
		Short: "Back up VK profile photos to Yandex Disk or another store",
		Long: ui.StyleTitle.Render("photobackup") + " - VK profile photo backup\n\n" +
			"Fetches the most recent profile photos of a VK user, names them by\n" +
			"like count and copies them into a backup folder.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.user, "user", "u", "", "VK user id or screen name (prompted when empty)")
	fl.StringVar(&f.tokens, "tokens", "token.txt", "token file: VK token on line 1, Yandex Disk token on line 2")
	fl.StringVarP(&f.folder, "folder", "f", "", "destination folder")
	fl.IntVarP(&f.count, "count", "n", 0, "number of photos to fetch")
	fl.StringVar(&f.album, "album", "", "VK album id")
	fl.StringVarP(&f.destination, "dest", "d", "", "destination: yadisk, s3 or local")
	fl.StringVar(&f.metadata, "metadata", "", "metadata file path")

	return cmd
}

// applyFlags overrides environment configuration with explicitly set flags.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("folder") {
		cfg.Folder = f.folder
	}
	if fl.Changed("count") {
		cfg.PhotoCount = f.count
	}
	if fl.Changed("album") {
		cfg.AlbumID = f.album
	}
	if fl.Changed("dest") {
		cfg.Destination = f.destination
	}
	if fl.Changed("metadata") {
		cfg.MetadataFile = f.metadata
	}
}

func runBackup(cmd *cobra.Command, f *flags) error {
	cfg := config.Load()
	applyFlags(cmd, f, cfg)

	closer, err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	out := cmd.OutOrStdout()

	if err := cfg.LoadTokens(f.tokens); err != nil {
		fmt.Fprintln(out, ui.FormatError(err.Error()))
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(out, ui.FormatError(err.Error()))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("env", cfg.Env).
		Str("destination", cfg.Destination).
		Str("folder", cfg.Folder).
		Msg("Starting photobackup")

	userArg := f.user
	if userArg == "" {
		userArg, err = promptUser(bufio.NewReader(cmd.InOrStdin()), out)
		if err != nil {
			return fmt.Errorf("read user id: %w", err)
		}
	}

	return run(ctx, cfg, userArg, out)
}

func run(ctx context.Context, cfg *config.Config, userArg string, out io.Writer) error {
	source := vk.NewClient(vk.Config{
		BaseURL:   cfg.VKBaseURL,
		Token:     cfg.VKToken,
		Version:   cfg.VKAPIVersion,
		Timeout:   cfg.HTTPTimeout,
		RateLimit: cfg.VKRateLimit,
		UserAgent: cfg.UserAgent,
	})

	userID, err := source.ResolveUser(ctx, userArg)
	if err != nil {
		fmt.Fprintln(out, ui.FormatError(err.Error()))
		return err
	}

	dest, err := newDestination(ctx, cfg)
	if err != nil {
		fmt.Fprintln(out, ui.FormatError(err.Error()))
		return err
	}

	printer := ui.NewPrinter(out)
	uploader := transfer.NewService(dest, cfg.Folder, cfg.TransferDelay)
	uploader.SetObserver(printer)

	svc := backup.NewService(source, uploader, backup.Options{
		AlbumID:      cfg.AlbumID,
		Count:        cfg.PhotoCount,
		MetadataFile: cfg.MetadataFile,
	})

	res, err := svc.Run(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Backup failed")
		fmt.Fprintln(out, ui.FormatError(err.Error()))
		return err
	}

	printer.Summary(res.Report)
	if cfg.MetadataFile != "" {
		fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("Metadata saved to %q", cfg.MetadataFile)))
	}
	if res.Report.HasFailures() {
		return errItemsFailed
	}
	return nil
}
