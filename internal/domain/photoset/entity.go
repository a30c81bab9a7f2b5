package photoset

// PhotoRecord is one source photo as handed over by the fetch stage.
// Pointer fields distinguish a missing value from zero.
type PhotoRecord struct {
	ID        int64
	LikeCount *int
	Timestamp *int64
	Sizes     []SizeVariant
}

// SizeVariant is one resolution of a photo. The last variant of a record is
// treated as the largest one.
type SizeVariant struct {
	Label  string
	URL    string
	Width  int
	Height int
}

// NamedAsset binds a destination file name to the URL it is copied from.
type NamedAsset struct {
	FileName  string
	SourceURL string
}

// AssetMetadata is the operator-facing record written to the side file.
type AssetMetadata struct {
	FileName string `json:"file_name"`
	Size     string `json:"size"`
}

// Set is the result of one build. Assets keep insertion order, which is the
// order transfers run in.
type Set struct {
	assets   []NamedAsset
	index    map[string]string
	metadata []AssetMetadata
}

// Assets returns the ordered name to URL bindings.
func (s *Set) Assets() []NamedAsset {
	if s == nil {
		return nil
	}
	return s.assets
}

// Metadata returns the side-file records in input order.
func (s *Set) Metadata() []AssetMetadata {
	if s == nil {
		return nil
	}
	return s.metadata
}

// Len is the number of distinct file names.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.assets)
}

// URL looks up the source URL bound to a file name.
func (s *Set) URL(fileName string) (string, bool) {
	if s == nil {
		return "", false
	}
	u, ok := s.index[fileName]
	return u, ok
}
