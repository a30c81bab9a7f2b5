package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwork/photobackup/internal/domain/photoset"
	"github.com/mwork/photobackup/internal/domain/transfer"
	"github.com/mwork/photobackup/internal/pkg/logger"
	"github.com/mwork/photobackup/internal/pkg/vk"
)

// PhotoSource lists the photos of a user album.
type PhotoSource interface {
	ListProfilePhotos(ctx context.Context, ownerID int64, albumID string, count int) ([]vk.Photo, error)
}

// Uploader transfers a built photo set.
type Uploader interface {
	UploadAll(ctx context.Context, assets []photoset.NamedAsset) *transfer.Report
}

// Options selects what a run fetches and where the side file goes.
type Options struct {
	AlbumID      string
	Count        int
	MetadataFile string
}

// Result is everything a run produced.
type Result struct {
	RunID    string
	UserID   int64
	Set      *photoset.Set
	Report   *transfer.Report
	Duration time.Duration
}

// Service runs one backup: fetch, name, write metadata, transfer.
type Service struct {
	source   PhotoSource
	uploader Uploader
	opts     Options
}

// NewService creates backup service
func NewService(source PhotoSource, uploader Uploader, opts Options) *Service {
	return &Service{
		source:   source,
		uploader: uploader,
		opts:     opts,
	}
}

// Run backs up the photos of userID. Fetch, naming and metadata errors end
// the run; transfer failures are only reported in the result.
func (s *Service) Run(ctx context.Context, userID int64) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	l := logger.FromContext(ctx)

	l.Info().
		Int64("user_id", userID).
		Str("album_id", s.opts.AlbumID).
		Int("count", s.opts.Count).
		Msg("Starting backup")

	photos, err := s.source.ListProfilePhotos(ctx, userID, s.opts.AlbumID, s.opts.Count)
	if err != nil {
		return nil, fmt.Errorf("fetch photos: %w", err)
	}

	set, err := photoset.Build(ctx, toRecords(photos))
	if err != nil {
		return nil, fmt.Errorf("build photo set: %w", err)
	}

	if s.opts.MetadataFile != "" {
		if err := photoset.WriteMetadata(s.opts.MetadataFile, set.Metadata()); err != nil {
			return nil, fmt.Errorf("write metadata: %w", err)
		}
		l.Info().Str("file", s.opts.MetadataFile).Int("records", len(set.Metadata())).Msg("Metadata written")
	}

	report := s.uploader.UploadAll(ctx, set.Assets())

	res := &Result{
		RunID:    runID,
		UserID:   userID,
		Set:      set,
		Report:   report,
		Duration: time.Since(start),
	}

	sum := report.Summary()
	l.Info().
		Int("uploaded", sum.Uploaded).
		Int("failed", sum.Failed).
		Dur("took", res.Duration).
		Msg("Backup finished")

	return res, nil
}

func toRecords(photos []vk.Photo) []photoset.PhotoRecord {
	records := make([]photoset.PhotoRecord, 0, len(photos))
	for _, p := range photos {
		rec := photoset.PhotoRecord{
			ID:        p.ID,
			Timestamp: p.Date,
			Sizes:     make([]photoset.SizeVariant, 0, len(p.Sizes)),
		}
		if p.Likes != nil {
			rec.LikeCount = p.Likes.Count
		}
		for _, sz := range p.Sizes {
			rec.Sizes = append(rec.Sizes, photoset.SizeVariant{
				Label:  sz.Type,
				URL:    sz.URL,
				Width:  sz.Width,
				Height: sz.Height,
			})
		}
		records = append(records, rec)
	}
	return records
}
