// Package builtin links every built-in template design into the render
// registry. Import it for side effects wherever the full catalogue is
// needed.
package builtin

import (
	_ "github.com/flanksource/docstudio/render/docx"
	_ "github.com/flanksource/docstudio/render/htmltpl"
	_ "github.com/flanksource/docstudio/render/pdftpl"
	_ "github.com/flanksource/docstudio/render/pptx"
	_ "github.com/flanksource/docstudio/render/xlsx"
)
