package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
)

// printMetrics writes all metrics collected during the run in the Prometheus text format.
// It does nothing, if metrics are not enabled.
func (c *cli) printMetrics(w io.Writer) error {
	if c.registry == nil {
		return nil
	}

	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}

	fmt.Fprintln(w)

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("could not print metrics: %w", err)
		}
	}

	return nil
}
