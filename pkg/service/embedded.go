// Package service installs and drives the assistant's systemd unit.
package service

import _ "embed"

// unitTemplate is the systemd unit with template placeholders. The install
// directory and user are substituted at install time.
//
//go:embed raspai.service.tmpl
var unitTemplate string
