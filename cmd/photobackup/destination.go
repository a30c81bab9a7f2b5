package main

import (
	"context"
	"fmt"

	"github.com/mwork/photobackup/internal/config"
	"github.com/mwork/photobackup/internal/domain/transfer"
	"github.com/mwork/photobackup/internal/pkg/imaging"
	"github.com/mwork/photobackup/internal/pkg/storage"
	"github.com/mwork/photobackup/internal/pkg/yadisk"
)

// newDestination builds the store selected by cfg.Destination.
func newDestination(ctx context.Context, cfg *config.Config) (transfer.Destination, error) {
	mirrorCfg := storage.MirrorConfig{
		Timeout:   cfg.HTTPTimeout,
		MaxSize:   storage.MaxPhotoSize,
		UserAgent: cfg.UserAgent,
		Image:     imaging.DefaultConfig(),
	}

	switch cfg.Destination {
	case config.DestinationYaDisk:
		return yadisk.NewClient(yadisk.Config{
			BaseURL:   cfg.YaDiskBaseURL,
			Token:     cfg.YaDiskToken,
			Timeout:   cfg.HTTPTimeout,
			UserAgent: cfg.UserAgent,
		}), nil

	case config.DestinationS3:
		st, err := storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		return storage.NewMirror(st, mirrorCfg), nil

	case config.DestinationLocal:
		st, err := storage.NewLocalStorage(cfg.LocalDir, "")
		if err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		return storage.NewMirror(st, mirrorCfg), nil
	}

	return nil, fmt.Errorf("unknown destination %q", cfg.Destination)
}
