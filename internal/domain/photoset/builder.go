package photoset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mwork/photobackup/internal/pkg/logger"
)

const fileExt = ".jpg"

// Builder assigns unique file names to photo records.
//
// The primary name is "<likes>.jpg". A record whose primary name is taken
// gets "<likes>_<date>.jpg". When that is taken as well, a counter starting
// at 2 is appended ("<likes>_<date>_2.jpg", ...) until the name is free, so
// no binding is ever overwritten.
type Builder struct {
	set *Set
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{set: &Set{index: make(map[string]string)}}
}

// Build names every record in order and returns the finished set. The first
// malformed record aborts the build.
func Build(ctx context.Context, records []PhotoRecord) (*Set, error) {
	b := NewBuilder()
	for i, rec := range records {
		if _, err := b.Add(ctx, rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return b.Set(), nil
}

// Add names one record and appends it to the set.
func (b *Builder) Add(ctx context.Context, rec PhotoRecord) (NamedAsset, error) {
	if err := validateRecord(rec); err != nil {
		return NamedAsset{}, err
	}

	largest := rec.Sizes[len(rec.Sizes)-1]
	name := b.uniqueName(ctx, rec)

	asset := NamedAsset{FileName: name, SourceURL: largest.URL}
	b.set.assets = append(b.set.assets, asset)
	b.set.index[name] = largest.URL
	b.set.metadata = append(b.set.metadata, AssetMetadata{
		FileName: name,
		Size:     largest.Label,
	})

	return asset, nil
}

// Set returns the set built so far.
func (b *Builder) Set() *Set {
	return b.set
}

func (b *Builder) uniqueName(ctx context.Context, rec PhotoRecord) string {
	likes := strconv.Itoa(*rec.LikeCount)

	name := likes + fileExt
	if !b.taken(name) {
		return name
	}

	base := likes + "_" + strconv.FormatInt(*rec.Timestamp, 10)
	name = base + fileExt
	if !b.taken(name) {
		return name
	}

	for n := 2; ; n++ {
		name = base + "_" + strconv.Itoa(n) + fileExt
		if !b.taken(name) {
			logger.FromContext(ctx).Warn().
				Int64("photo_id", rec.ID).
				Str("file_name", name).
				Msg("Photos share like count and date, added counter suffix")
			return name
		}
	}
}

func (b *Builder) taken(name string) bool {
	_, ok := b.set.index[name]
	return ok
}

func validateRecord(rec PhotoRecord) error {
	switch {
	case rec.LikeCount == nil:
		return fmt.Errorf("%w: photo %d has no likes.count", ErrMalformedRecord, rec.ID)
	case *rec.LikeCount < 0:
		return fmt.Errorf("%w: photo %d has negative likes.count", ErrMalformedRecord, rec.ID)
	case rec.Timestamp == nil:
		return fmt.Errorf("%w: photo %d has no date", ErrMalformedRecord, rec.ID)
	case len(rec.Sizes) == 0:
		return fmt.Errorf("%w: photo %d has no sizes", ErrMalformedRecord, rec.ID)
	case rec.Sizes[len(rec.Sizes)-1].URL == "":
		return fmt.Errorf("%w: photo %d has an empty url", ErrMalformedRecord, rec.ID)
	}
	return nil
}
