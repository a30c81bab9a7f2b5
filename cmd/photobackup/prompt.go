package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mwork/photobackup/internal/pkg/ui"
)

// isTerminal is a test seam for term.IsTerminal on stdin.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// promptUser reads the VK user id from reader. The prompt is printed only
// for an interactive terminal so piped input stays quiet.
func promptUser(reader *bufio.Reader, w io.Writer) (string, error) {
	if isTerminal() {
		if _, err := fmt.Fprint(w, ui.FormatInfo("Enter VK user id or screen name")+"\n> "); err != nil {
			return "", err
		}
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}

	user := strings.TrimSpace(line)
	if user == "" {
		return "", errors.New("empty user id")
	}
	return user, nil
}
