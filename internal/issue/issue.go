// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id keys an issue card in the catalog.
type Id int

const (
	ContainerNotFoundId Id = iota + 1
	BadMagicId
	CompressedContainerId
	EncryptedContainerId
	ContainerCorruptId
	EntryNotFoundId
	ConfigLoadFailedId
	OutputNotWritableId
)

type MarkdownMsg string

type HttpLink string

// Issue is one help card: markdown explaining a failure class, plus any
// links worth following. Cards are static; the catalog below holds one
// per Id.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink // documentation links about this issue type
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id                   { return i.id }
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }
func (i *Issue) ExtLinks() []HttpLink { return slices.Clone(i.extLinks) }

// Render passes the card through glamour with the given style. Links, if
// any, are folded into a trailing "See also" section first.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if n := len(i.docLinks) + len(i.extLinks); n > 0 {
		links := make([]HttpLink, 0, n)
		links = append(links, i.docLinks...)
		links = append(links, i.extLinks...)

		var b strings.Builder
		b.WriteString(md)
		b.WriteString("\n\n## See also: ")
		for _, link := range links {
			b.WriteString("- [" + string(link) + "]")
		}
		md = b.String()
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	containerNotFoundIssue = &Issue{
		id: ContainerNotFoundId,
		mdMsg: `
# Container file not found!

The packed config container you named does not exist or is not readable.

## Things you can try:
- Check the path for typos
- Verify the file exists and you have read permission:
~~~
$ ls -l <container>
~~~`,
	}

	badMagicIssue = &Issue{
		id: BadMagicId,
		mdMsg: `
# Not a packed config container!

The first four bytes of this file do not match the container signature
in either byte order, so it was not produced by the packer (or it has
been damaged at the very start).

## Common causes:
- The file is a different format that shares the extension
- The file was wrapped (zip, gzip) after packing
- The download or copy was truncated at byte zero

## Things you can try:
- Inspect the first bytes:
~~~
$ xxd -l 16 <container>
~~~
- If the file is an archive, extract it first and point cfgarc at the
  payload inside`,
	}

	compressedContainerIssue = &Issue{
		id: CompressedContainerId,
		mdMsg: `
# Compressed container!

This container declares a compression method in its header. cfgarc only
reads stores written with compression method 0 (uncompressed); the
compressed variants were never observed in the wild and their codecs are
not implemented.

## Things you can try:
- Re-export the container with compression disabled
- Check whether an uncompressed sibling file exists next to this one`,
	}

	encryptedContainerIssue = &Issue{
		id: EncryptedContainerId,
		mdMsg: `
# Encrypted container!

This container declares an encryption method in its header. cfgarc only
reads stores written with encryption method 0 (plaintext); there is no
key material to decrypt the payload with.

## Things you can try:
- Re-export the container with encryption disabled
- Obtain the plaintext variant from the producing system`,
	}

	containerCorruptIssue = &Issue{
		id: ContainerCorruptId,
		mdMsg: `
# Container data is corrupt!

The container's structure broke down mid-decode: a length ran past the
end of the file, a node tag was not one of the known kinds, or a packed
integer never terminated. The error message above names the exact byte
offset.

## Common causes:
- Truncated download or copy
- The file was edited or patched after packing

## Things you can try:
- Compare the file size against the original source
- Re-acquire the container from where it was produced
- Run with verbose mode for decoding detail:
~~~
$ cfgarc --verbose list <container>
~~~`,
	}

	entryNotFoundIssue = &Issue{
		id: EntryNotFoundId,
		mdMsg: `
# Entry not found!

No entry in this container matches the path you asked for. Entry paths
are matched exactly as stored (after separator normalization).

## Things you can try:
- List the entries the container actually holds:
~~~
$ cfgarc list <container>
~~~
- Copy the path from the listing verbatim`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the cfgarc configuration file.

## Configuration file locations:
- Linux: ~/.config/cfgarc/config.cue
- macOS: ~/Library/Application Support/cfgarc/config.cue
- Windows: %APPDATA%\cfgarc\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ cfgarc config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/cfgarc/config.cue
~~~

## Example configuration:
~~~cue
output_dir: "unpacked"
format:     "table"
color:      "auto"
~~~`,
	}

	outputNotWritableIssue = &Issue{
		id: OutputNotWritableId,
		mdMsg: `
# Cannot write output!

The output directory could not be created or written to.

## Common causes:
- Trying to write into a protected directory
- The output path exists but is a file
- The disk is full

## Things you can try:
- Choose a different destination:
~~~
$ cfgarc unpack <container> -o ./unpacked
~~~
- Check permissions on the destination and its parents`,
	}

	issues = map[Id]*Issue{
		containerNotFoundIssue.Id():   containerNotFoundIssue,
		badMagicIssue.Id():            badMagicIssue,
		compressedContainerIssue.Id(): compressedContainerIssue,
		encryptedContainerIssue.Id():  encryptedContainerIssue,
		containerCorruptIssue.Id():    containerCorruptIssue,
		entryNotFoundIssue.Id():       entryNotFoundIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		outputNotWritableIssue.Id():   outputNotWritableIssue,
	}
)

// Values lists every card, ordered by Id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

// Get returns the card for id, or nil for an unknown id.
func Get(id Id) *Issue {
	return issues[id]
}
