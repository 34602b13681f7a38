// Package builtin holds the resources compiled into binaries that use this
// module, most notably local copies of the DTDs needed for offline XML
// parsing.  The loader chain consults these after the configured and ambient
// loaders, so applications can shadow any of them.
package builtin

import "embed"

//go:embed dtd
var FS embed.FS
