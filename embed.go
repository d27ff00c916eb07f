package vulninsights

import "embed"

// ContentFS holds the static site content (team bios) compiled into the binary.
//
//go:embed content
var ContentFS embed.FS
