// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known issue with rendered guidance.
type Id int

const (
	ToolchainNotReadyId Id = iota + 1
	BuildToolNotFoundId
	ProfileUnwritableId
	ConfigLoadFailedId
)

// MarkdownMsg is Markdown text that will be rendered to the terminal.
type MarkdownMsg string

// HttpLink is a documentation or reference URL.
type HttpLink string

// Issue pairs a stable id with rendered user guidance.
type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
}

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Render renders the issue's guidance through glamour using the given style.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	toolchainNotReadyIssue = &Issue{
		id: ToolchainNotReadyId,
		mdMsg: `
# Toolchain not ready

One or more SDK components are missing from the installation root.

## Things you can try
- Re-run the installer:
~~~
$ psetup install
~~~
- If the build already ran, point the installer at the outputs:
~~~
$ psetup install --skip-build
~~~`,
	}

	buildToolNotFoundIssue = &Issue{
		id: BuildToolNotFoundId,
		mdMsg: `
# Build tool not found

The external build tool (cargo) is not on PATH, so the toolchain
binaries cannot be produced.

## Things you can try
- Install the build tool and re-run.
- If the binaries are already built, skip the build step:
~~~
$ psetup install --skip-build
~~~`,
	}

	profileUnwritableIssue = &Issue{
		id: ProfileUnwritableId,
		mdMsg: `
# Shell profile could not be updated

The SDK was installed, but a shell startup file could not be written,
so new shells will not see PORDOSOL_HOME or the bin directory.

## Things you can try
- Check the file's permissions and re-run the installer.
- Or add the exports to your profile by hand; the installer prints
  the exact block it wanted to write.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The config.cue file exists but failed to parse or validate.

## Things you can try
- Check the file for CUE syntax errors.
- Delete the file to fall back to defaults; every setting has a
  matching command-line flag.`,
	}

	catalog = map[Id]*Issue{
		ToolchainNotReadyId: toolchainNotReadyIssue,
		BuildToolNotFoundId: buildToolNotFoundIssue,
		ProfileUnwritableId: profileUnwritableIssue,
		ConfigLoadFailedId:  configLoadFailedIssue,
	}
)

// Lookup returns the catalog issue for id, or nil if unknown.
func Lookup(id Id) *Issue {
	return catalog[id]
}

// Ids returns all known issue ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
