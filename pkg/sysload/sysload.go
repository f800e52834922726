// Package sysload samples host CPU and memory utilization for the
// reference component's gauges.
package sysload

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Load is one utilization sample, each value in [0,1].
type Load struct {
	CPU    float64
	Memory float64
}

// Sampler reads host utilization. Prime must be called once before the
// first Sample so that CPU percentages are measured against a baseline
// instead of blocking for an interval.
type Sampler struct{}

// Prime takes the baseline CPU reading. The value is discarded; it
// only establishes the reference point for subsequent delta samples.
func (s *Sampler) Prime() error {
	if _, err := cpu.Percent(0, false); err != nil {
		return fmt.Errorf("sysload: prime cpu: %w", err)
	}
	return nil
}

// Sample returns utilization since the previous call. It does not
// sleep, so it is safe to call from the dispatch path.
func (s *Sampler) Sample() (Load, error) {
	var load Load

	pct, err := cpu.Percent(0, false)
	if err != nil {
		return load, fmt.Errorf("sysload: cpu: %w", err)
	}
	if len(pct) > 0 {
		load.CPU = pct[0] / 100
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return load, fmt.Errorf("sysload: memory: %w", err)
	}
	load.Memory = vm.UsedPercent / 100

	return load, nil
}
