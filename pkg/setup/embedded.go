package setup

import _ "embed"

// scriptTemplate is the provisioning script uploaded to a device during
// deployment. It mirrors the local step list with shell existence guards
// so re-runs stay idempotent.
//
//go:embed setup.sh.tmpl
var scriptTemplate string
