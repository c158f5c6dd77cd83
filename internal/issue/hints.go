// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"charmpack/pkg/bundle"
	"charmpack/pkg/pack"

	"github.com/charmbracelet/glamour"
)

// render is swappable in tests to avoid terminal-dependent output.
var render = glamour.Render

// hint is a markdown "how to fix" block attached to a well-known failure.
type hint struct {
	match func(error) bool
	md    string
}

var hints = []hint{
	{
		match: func(err error) bool {
			var e *bundle.DescriptorError
			return errors.As(err, &e)
		},
		md: `## Missing or invalid bundle.yaml

A bundle project needs a readable ` + "`bundle.yaml`" + ` at its root.

- Create one with at least a ` + "`name`" + ` field:

~~~yaml
name: mybundle
~~~`,
	},
	{
		match: func(err error) bool {
			var e *bundle.MissingNameError
			return errors.As(err, &e)
		},
		md: `## bundle.yaml has no name

The archive is named after the bundle, so ` + "`bundle.yaml`" + ` must carry a
top-level ` + "`name`" + ` field:

~~~yaml
name: mybundle
~~~`,
	},
	{
		match: func(err error) bool {
			var e *pack.MissingFileError
			return errors.As(err, &e)
		},
		md: `## Missing mandatory file

Every bundle ships a fixed set of files next to its extra content.

- Make sure the reported file exists in the project root
- ` + "`README.md`" + ` is always required for bundles`,
	},
}

// RenderHint returns a rendered markdown hint for well-known packing
// failures. The second return is false when the error has no attached hint.
func RenderHint(err error) (string, bool) {
	for _, h := range hints {
		if !h.match(err) {
			continue
		}
		out, renderErr := render(h.md, "dark")
		if renderErr != nil {
			// Fall back to the raw markdown rather than hiding the hint.
			return h.md, true
		}
		return out, true
	}
	return "", false
}
