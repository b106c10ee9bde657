package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// UnitPath is where the systemd unit of the metric daemon is written.
	UnitPath = "/etc/systemd/system/metric.service"
	// systemctl is replaced in tests.
	systemctl = func(args ...string) error {
		return exec.Command("systemctl", args...).Run()
	}
)

const unitTemplate = `[Unit]
Description=metric unit conversion daemon
After=network.target

[Service]
Type=simple
ExecStart=/path/to/metric daemon --config /path/to/config
Restart=on-failure
RestartSec=5

[Install]
WantedBy=multi-user.target
`

// UnitFile renders the systemd unit that starts exePath with configPath.
func UnitFile(exePath, configPath string) string {
	unit := strings.ReplaceAll(unitTemplate, "/path/to/metric", exePath)
	return strings.ReplaceAll(unit, "/path/to/config", configPath)
}

func Install(configPath string) error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}
	configPath, err = filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the config: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	return installUnit(exePath, configPath)
}

func installUnit(exePath, configPath string) error {
	_, err := os.Stat(UnitPath)
	if err == nil {
		return fmt.Errorf("%s already exists. Uninstall metric first by running 'sudo metric uninstall', or remove the file by hand", UnitPath)
	}

	err = os.MkdirAll(filepath.Dir(UnitPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(UnitPath), err)
	}

	logrus.Infof("writing systemd unit to %s", UnitPath)

	err = os.WriteFile(UnitPath, []byte(UnitFile(exePath, configPath)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", UnitPath, err)
	}

	logrus.Infof("starting metric")

	if err := systemctl("daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}
	if err := systemctl("enable", "--now", filepath.Base(UnitPath)); err != nil {
		return fmt.Errorf("failed to enable %s: %w", filepath.Base(UnitPath), err)
	}

	return nil
}
