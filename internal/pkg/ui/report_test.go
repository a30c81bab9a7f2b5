package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwork/photobackup/internal/domain/transfer"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.FolderEnsured(transfer.FolderResult{Path: "Backup photos VK", Status: transfer.FolderExists})
	p.ItemFinished(0, 2, transfer.ItemOutcome{FileName: "3.jpg", Status: transfer.ItemUploaded})
	p.ItemFinished(1, 2, transfer.ItemOutcome{FileName: "5.jpg", Status: transfer.ItemFailed, Reason: "status=507"})
	p.Summary(&transfer.Report{
		Folder: transfer.FolderResult{Path: "Backup photos VK"},
		Items: []transfer.ItemOutcome{
			{Status: transfer.ItemUploaded},
			{Status: transfer.ItemFailed},
		},
	})

	out := buf.String()
	for _, want := range []string{
		`Folder "Backup photos VK" already exists`,
		`[1/2]`,
		`File "3.jpg" uploaded`,
		`File "5.jpg": status=507`,
		`1 of 2 photos uploaded to "Backup photos VK", 1 failed`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
