package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector reports store statistics that are read at scrape time rather
// than updated on every operation.
type Collector struct {
	keyCount func() int
	keysDesc *prometheus.Desc
}

// NewCollector creates a collector that reads the key count from fn.
func NewCollector(keyCount func() int) *Collector {
	return &Collector{
		keyCount: keyCount,
		keysDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "keys"),
			"Number of entries held by the store, including expired entries not yet read",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keysDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keysDesc, prometheus.GaugeValue, float64(c.keyCount()))
}
