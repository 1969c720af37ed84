// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"folio-cli/internal/config"
	"folio-cli/internal/doc"
	"folio-cli/internal/issue"
	"folio-cli/internal/site"
	"folio-cli/internal/tui"
	"folio-cli/pkg/format"
)

// issueFor maps a command failure to the matching troubleshooting entry,
// or nil when no entry covers it.
func issueFor(err error) *issue.Issue {
	var parseErr *site.ParseError
	switch {
	case errors.Is(err, site.ErrNoDocuments):
		return issue.Get(issue.EmptyTreeId)
	case errors.As(err, &parseErr):
		return issue.Get(issue.MarkdownParseErrorId)
	case errors.Is(err, doc.ErrUnresolved):
		return issue.Get(issue.UnresolvedReferencesId)
	case errors.Is(err, format.ErrInvalidFormat):
		return issue.Get(issue.UnknownFormatId)
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.Get(issue.ConfigLoadFailedId)
	case errors.Is(err, fs.ErrNotExist):
		return issue.Get(issue.SourceNotFoundId)
	case errors.Is(err, fs.ErrPermission):
		return issue.Get(issue.OutputWriteFailedId)
	}
	return nil
}

// printIssueGuidance writes the rendered troubleshooting entry for err to
// stderr. It is a no-op when no entry matches or stdout is not a terminal.
func printIssueGuidance(err error) {
	entry := issueFor(err)
	if entry == nil || !tui.IsOutputTerminal() {
		return
	}
	scheme := config.ColorSchemeAuto
	if cfg := config.Get(); cfg != nil {
		scheme = cfg.UI.ColorScheme
	}
	out, rerr := entry.Render(tui.GlamourStyle(scheme))
	if rerr != nil {
		return
	}
	fmt.Fprint(os.Stderr, out)
}
