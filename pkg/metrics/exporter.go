package metrics

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/kvsample/pkg/metrics/exporters/prometheus"
)

// InitMetricsExporter installs the global meter provider for the given
// backend and returns the handler that serves the collected metrics.
func InitMetricsExporter(metricsBackend string) (http.Handler, error) {
	mb := strings.ToLower(metricsBackend)
	switch mb {
	// Prometheus is the only exporter for now
	case prometheus.ExporterName:
		return prometheus.InitExporter()
	default:
		return nil, fmt.Errorf("unsupported metrics backend: %v", metricsBackend)
	}
}
