// Package observability provides observability utilities
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// WriteTextfile writes every registered metric to path in the Prometheus text format,
// for pickup by a node exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string, log logrus.FieldLogger) error {
	return writeTextfile(path, prometheus.DefaultGatherer, log)
}

func writeTextfile(path string, gatherer prometheus.Gatherer, log logrus.FieldLogger) error {
	if path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}

	log.WithField("path", path).Debug("Wrote metrics textfile")

	return nil
}
