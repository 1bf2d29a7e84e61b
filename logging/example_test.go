package logging_test

import (
	"github.com/icdeck/icdeck/logging"
)

func ExampleNewLogger() {
	log := logging.NewLogger("session")

	log.WithField("project", "Alpha").Info("Entering project")
	log.Debug("Only shown with ICDECK_LOG_LEVEL=debug")
}
