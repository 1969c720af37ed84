// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SourceNotFoundId Id = iota + 1
	MarkdownParseErrorId
	UnresolvedReferencesId
	UnknownFormatId
	ConfigLoadFailedId
	OutputWriteFailedId
	EmptyTreeId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Source not found!

We searched for Markdown sources but couldn't find any in the given location.

## Things you can try:
- Check that the path points at a file or directory that exists
- Build a whole directory tree:
~~~
$ folio build ./docs
~~~

- Or render a single document:
~~~
$ folio render ./docs/intro.md
~~~`,
	}

	markdownParseErrorIssue = &Issue{
		id: MarkdownParseErrorId,
		mdMsg: `
# Failed to parse a Markdown source!

One of your documents contains front matter or markup we could not process.

## Common issues:
- Front matter that is not valid YAML
- An unterminated front matter fence (missing closing ` + "`---`" + `)
- A file that is not UTF-8 encoded

## Things you can try:
- Check the error message above for the file and line
- Inspect how the document was parsed:
~~~
$ folio inspect ./docs/broken.md
~~~

## Example front matter:
~~~yaml
---
title: "Getting Started"
id: getting-started
styles: [tutorial]
---
~~~`,
	}

	unresolvedReferencesIssue = &Issue{
		id: UnresolvedReferencesId,
		mdMsg: `
# Unresolved references!

A document still contains link references that no definition or anchor matches,
so it cannot be rendered.

## Things you can try:
- List every node of the document, including unresolved ones:
~~~
$ folio inspect ./docs/page.md
~~~

- Check for typos in reference identifiers like ` + "`[text][ref-id]`" + `
- Add the missing link definition:
~~~markdown
[ref-id]: https://example.com
~~~

- Or add a header whose anchor matches the identifier`,
	}

	unknownFormatIssue = &Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown output format!

The format you specified is not one of the supported output formats.

## Supported formats:
- **html**: standalone HTML pages
- **epub**: HTML tuned for EPUB packaging
- **pdf**: HTML tuned for PDF conversion
- **ast**: an indented dump of the document tree
- **terminal**: styled output for the terminal

## Example:
~~~
$ folio render --format html ./docs/intro.md
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the folio configuration file.

## Configuration file locations:
- Linux: ~/.config/folio/folio.toml
- macOS: ~/Library/Application Support/folio/folio.toml
- Windows: %APPDATA%\folio\folio.toml

## Things you can try:
- Create a default configuration:
~~~
$ folio config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
site_title = "My Docs"
default_format = "html"

[nav]
max_depth = 3
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write output!

Rendered output could not be written to its destination.

## Common causes:
- The output directory is not writable
- The disk is full
- A file with the same name is locked by another process

## Things you can try:
- Check permissions on the output directory
- Pick a different destination:
~~~
$ folio build --out ./public ./docs
~~~`,
	}

	emptyTreeIssue = &Issue{
		id: EmptyTreeId,
		mdMsg: `
# Nothing to build!

The source directory contains no Markdown documents.

## Things you can try:
- Check that your sources use the ` + "`.md`" + ` suffix
- Point folio at the directory that actually holds your documents:
~~~
$ folio build ./docs
~~~`,
	}

	issues = map[Id]*Issue{
		sourceNotFoundIssue.Id():       sourceNotFoundIssue,
		markdownParseErrorIssue.Id():   markdownParseErrorIssue,
		unresolvedReferencesIssue.Id(): unresolvedReferencesIssue,
		unknownFormatIssue.Id():        unknownFormatIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		outputWriteFailedIssue.Id():    outputWriteFailedIssue,
		emptyTreeIssue.Id():            emptyTreeIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
