package ui

import (
	"fmt"
	"io"

	"github.com/mwork/photobackup/internal/domain/transfer"
)

// Printer writes one line per transfer event. It satisfies
// transfer.Observer.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) FolderEnsured(res transfer.FolderResult) {
	switch res.Status {
	case transfer.FolderCreated:
		fmt.Fprintln(p.w, FormatSuccess(fmt.Sprintf("Folder %q created", res.Path)))
	case transfer.FolderExists:
		fmt.Fprintln(p.w, FormatInfo(fmt.Sprintf("Folder %q already exists", res.Path)))
	default:
		fmt.Fprintln(p.w, FormatWarning(fmt.Sprintf("Folder %q: %s", res.Path, res.Reason)))
	}
}

func (p *Printer) ItemFinished(index, total int, item transfer.ItemOutcome) {
	counter := FormatMuted(fmt.Sprintf("[%d/%d]", index+1, total))
	if item.Status == transfer.ItemUploaded {
		fmt.Fprintf(p.w, "%s %s\n", counter, FormatSuccess(fmt.Sprintf("File %q uploaded", item.FileName)))
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", counter, FormatError(fmt.Sprintf("File %q: %s", item.FileName, item.Reason)))
}

// Summary prints the aggregate line of a report.
func (p *Printer) Summary(r *transfer.Report) {
	s := r.Summary()
	line := fmt.Sprintf("%d of %d photos uploaded to %q", s.Uploaded, s.Total, r.Folder.Path)
	if s.Failed > 0 {
		fmt.Fprintln(p.w, FormatWarning(fmt.Sprintf("%s, %d failed", line, s.Failed)))
		return
	}
	fmt.Fprintln(p.w, FormatSuccess(line))
}
