package setup

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/xVc323/raspai/pkg/config"
	"github.com/xVc323/raspai/pkg/service"
	"github.com/xVc323/raspai/pkg/utils"
)

// RenderScript produces the provisioning shell script for a remote
// device. The install directory may be home-relative; the script expands
// it on the device, and the embedded unit defers expansion the same way.
func RenderScript(opts Options) (string, error) {
	if strings.TrimSpace(opts.User) == "" {
		return "", fmt.Errorf("user is required to render the provisioning script")
	}
	if err := utils.ValidateRemoteDir(opts.Dir); err != nil {
		return "", err
	}

	unit, err := service.RenderUnitRaw(service.UnitConfig{
		User:       opts.User,
		InstallDir: "${DIR}",
		Interval:   opts.Interval,
		Harshness:  opts.Harshness,
	})
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("setup.sh").Parse(scriptTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing script template: %w", err)
	}

	data := struct {
		Dir            string
		Packages       string
		KeyVar         string
		Placeholder    string
		InstallService bool
		StartService   bool
		Unit           string
		UnitPath       string
		UnitName       string
	}{
		Dir:            shellDir(opts.Dir),
		Packages:       strings.Join(AptPackages, " "),
		KeyVar:         config.KeyAPIKey,
		Placeholder:    config.Placeholder,
		InstallService: !opts.SkipService,
		StartService:   !opts.SkipService && opts.StartService,
		Unit:           unit,
		UnitPath:       service.UnitPath,
		UnitName:       service.UnitName,
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering script: %w", err)
	}

	return buf.String(), nil
}

// shellDir turns a home-relative path into a $HOME expression the device
// shell expands.
func shellDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "~" {
		return "$HOME"
	}
	if strings.HasPrefix(dir, "~/") {
		return "$HOME/" + strings.TrimPrefix(dir, "~/")
	}
	return dir
}
