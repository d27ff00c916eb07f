package assets

import "embed"

// AssetsFS serves /assets/. css/output.css is generated by "do gen".
//
//go:embed css js img
var AssetsFS embed.FS
