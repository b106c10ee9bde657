package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func Uninstall() error {
	logrus.Infof("stopping metric")

	err := systemctl("disable", "--now", filepath.Base(UnitPath))
	if err != nil {
		return fmt.Errorf("failed to disable %s: %w. Are you root?", filepath.Base(UnitPath), err)
	}

	logrus.Infof("removing systemd unit")

	// nothing to remove
	_, err = os.Stat(UnitPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", UnitPath, err)
	}

	err = os.Remove(UnitPath)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", UnitPath, err)
	}

	return systemctl("daemon-reload")
}
