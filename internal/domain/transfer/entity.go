package transfer

// FolderStatus is the outcome of the one-time folder check.
type FolderStatus string

const (
	FolderUnknown FolderStatus = "unknown"
	FolderCreated FolderStatus = "created"
	FolderExists  FolderStatus = "already_exists"
	FolderFailed  FolderStatus = "failed"
)

// ItemStatus is the state of a single transfer.
type ItemStatus string

const (
	ItemPending  ItemStatus = "pending"
	ItemUploaded ItemStatus = "uploaded"
	ItemFailed   ItemStatus = "failed"
)

// FolderResult describes what happened to the destination folder.
type FolderResult struct {
	Path   string       `json:"path"`
	Status FolderStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
}

// ItemOutcome is the final state of one asset transfer.
type ItemOutcome struct {
	FileName  string     `json:"file_name"`
	SourceURL string     `json:"source_url"`
	Path      string     `json:"path"`
	Status    ItemStatus `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	Err       error      `json:"-"`
}

// Report collects the folder result and every item outcome of a run, in
// the order the transfers were attempted.
type Report struct {
	Folder FolderResult  `json:"folder"`
	Items  []ItemOutcome `json:"items"`
}

// Summary holds aggregate counters of a report.
type Summary struct {
	Total    int `json:"total"`
	Uploaded int `json:"uploaded"`
	Failed   int `json:"failed"`
}

// Summary counts outcomes by status.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Items)}
	for _, it := range r.Items {
		switch it.Status {
		case ItemUploaded:
			s.Uploaded++
		case ItemFailed:
			s.Failed++
		}
	}
	return s
}

// HasFailures reports whether any item failed.
func (r *Report) HasFailures() bool {
	return r.Summary().Failed > 0
}
