package transfer

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/mwork/photobackup/internal/domain/photoset"
	"github.com/mwork/photobackup/internal/pkg/logger"
)

// DefaultDelay is the pause before every upload request.
const DefaultDelay = 330 * time.Millisecond

// Observer is notified after the folder check and after every item.
type Observer interface {
	FolderEnsured(res FolderResult)
	ItemFinished(index, total int, item ItemOutcome)
}

// Service copies a photo set into one destination folder, one item at a
// time. A failed item never stops the remaining ones.
type Service struct {
	dest     Destination
	folder   string
	delay    time.Duration
	observer Observer
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewService creates a transfer service for the given folder.
func NewService(dest Destination, folder string, delay time.Duration) *Service {
	if delay < 0 {
		delay = 0
	}
	return &Service{
		dest:   dest,
		folder: strings.Trim(folder, "/"),
		delay:  delay,
		sleep:  sleepContext,
	}
}

// SetObserver registers a progress observer. nil disables notifications.
func (s *Service) SetObserver(o Observer) {
	s.observer = o
}

// Folder returns the destination folder path.
func (s *Service) Folder() string {
	return s.folder
}

// EnsureFolder asks the destination to create the folder. Failures are
// reported in the result, never returned.
func (s *Service) EnsureFolder(ctx context.Context, folder string) FolderResult {
	l := logger.FromContext(ctx)
	res := FolderResult{Path: folder, Status: FolderUnknown}

	exists, err := s.dest.CreateFolder(ctx, folder)
	switch {
	case err != nil:
		res.Status = FolderFailed
		res.Reason = err.Error()
		l.Error().Err(err).Str("folder", folder).Msg("Failed to create folder")
	case exists:
		res.Status = FolderExists
		l.Info().Str("folder", folder).Msg("Folder already exists")
	default:
		res.Status = FolderCreated
		l.Info().Str("folder", folder).Msg("Folder created")
	}

	if s.observer != nil {
		s.observer.FolderEnsured(res)
	}
	return res
}

// UploadAll ensures the folder exactly once and then attempts every asset in
// order. The report always has one outcome per asset. Once ctx is done, the
// remaining items are marked failed without being sent.
func (s *Service) UploadAll(ctx context.Context, assets []photoset.NamedAsset) *Report {
	l := logger.FromContext(ctx)

	report := &Report{
		Folder: s.EnsureFolder(ctx, s.folder),
		Items:  make([]ItemOutcome, 0, len(assets)),
	}

	for i, a := range assets {
		item := ItemOutcome{
			FileName:  a.FileName,
			SourceURL: a.SourceURL,
			Path:      s.pathFor(a.FileName),
			Status:    ItemPending,
		}

		err := ctx.Err()
		if err == nil {
			err = s.sleep(ctx, s.delay)
		}
		if err == nil {
			err = s.dest.UploadFromURL(ctx, item.Path, item.SourceURL)
		}

		if err != nil {
			item.Status = ItemFailed
			item.Err = &FailureError{Path: item.Path, Err: err}
			item.Reason = err.Error()
			l.Error().Err(err).Str("file", item.FileName).Str("path", item.Path).Msg("Upload failed")
		} else {
			item.Status = ItemUploaded
			l.Info().Str("file", item.FileName).Str("path", item.Path).Msg("Uploaded")
		}

		report.Items = append(report.Items, item)
		if s.observer != nil {
			s.observer.ItemFinished(i, len(assets), item)
		}
	}

	sum := report.Summary()
	l.Info().
		Str("folder", s.folder).
		Str("folder_status", string(report.Folder.Status)).
		Int("total", sum.Total).
		Int("uploaded", sum.Uploaded).
		Int("failed", sum.Failed).
		Msg("Transfer finished")

	return report
}

func (s *Service) pathFor(fileName string) string {
	if s.folder == "" {
		return fileName
	}
	return path.Join(s.folder, fileName)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
