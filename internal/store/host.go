package store

import (
	"log/slog"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a run executed on
type HostInfo struct {
	Hostname    string `json:"hostname,omitempty"`
	Platform    string `json:"platform,omitempty"`
	CPUModel    string `json:"cpuModel,omitempty"`
	CPUCores    int    `json:"cpuCores,omitempty"`
	MemoryBytes uint64 `json:"memoryBytes,omitempty"`
}

// CollectHost probes the current machine. Probes that fail are left empty;
// nil is returned only when every probe failed.
func CollectHost() *HostInfo {
	var info HostInfo
	ok := false

	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform + " " + h.PlatformVersion
		ok = true
	} else {
		slog.Debug("Host probe failed", "error", err)
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
		for _, c := range cpus {
			info.CPUCores += int(c.Cores)
		}
		ok = true
	} else if err != nil {
		slog.Debug("CPU probe failed", "error", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryBytes = vm.Total
		ok = true
	} else {
		slog.Debug("Memory probe failed", "error", err)
	}

	if !ok {
		return nil
	}
	return &info
}
