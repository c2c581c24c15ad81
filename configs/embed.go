// Package configs provides embedded configuration templates for schemadoc.
//
// Templates are embedded at build time with Go's //go:embed directive so
// they ship inside the binary regardless of how it was installed. The
// `schemadoc init` command writes them out as a starting point.
package configs

import _ "embed"

// ProjectConfigTemplate is the template for project-level configuration.
// Created by `schemadoc init` as .schemadoc.yaml in the project root.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
