package tool

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

// SystemInfo reports platform, CPU, memory, and disk information.
type SystemInfo struct {
	logger *zap.Logger
}

// NewSystemInfo creates the tool.
func NewSystemInfo(logger *zap.Logger) *SystemInfo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemInfo{logger: logger}
}

func (t *SystemInfo) Name() string { return "system_info" }

func (t *SystemInfo) Description() string {
	return "Get information about the system, such as CPU, memory, disk usage, etc."
}

func (t *SystemInfo) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"info_type": map[string]any{
				"type":        "string",
				"enum":        []string{"all", "cpu", "memory", "disk", "platform"},
				"description": "Type of information to get",
			},
		},
		"required": []string{},
	}
}

func (t *SystemInfo) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	infoType := stringArgDefault(args, "info_type", "all")

	result := make(map[string]map[string]any)

	if infoType == "all" || infoType == "platform" {
		result["platform"] = t.platformInfo(ctx)
	}
	if infoType == "all" || infoType == "cpu" {
		result["cpu"] = t.cpuInfo(ctx)
	}
	if infoType == "all" || infoType == "memory" {
		result["memory"] = t.memoryInfo(ctx)
	}
	if infoType == "all" || infoType == "disk" {
		result["disk"] = t.diskInfo(ctx)
	}

	var sb strings.Builder
	sb.WriteString("System Information:\n")
	for _, category := range []string{"platform", "cpu", "memory", "disk"} {
		info, ok := result[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n", strings.ToUpper(category))
		for _, key := range sortedKeys(info) {
			fmt.Fprintf(&sb, "  %s: %v\n", key, info[key])
		}
	}

	data := make(map[string]any, len(result))
	for k, v := range result {
		data[k] = v
	}
	return &Result{Success: true, Output: sb.String(), Data: data}, nil
}

func (t *SystemInfo) platformInfo(ctx context.Context) map[string]any {
	info := make(map[string]any)
	h, err := host.InfoWithContext(ctx)
	if err != nil {
		t.logger.Warn("host info unavailable", zap.Error(err))
		return info
	}
	info["system"] = h.OS
	info["release"] = h.PlatformVersion
	info["version"] = h.KernelVersion
	info["machine"] = h.KernelArch
	info["hostname"] = h.Hostname
	return info
}

func (t *SystemInfo) cpuInfo(ctx context.Context) map[string]any {
	info := make(map[string]any)
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		info["physical_cores"] = physical
	}
	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		info["total_cores"] = logical
	}
	if percents, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(percents) > 0 {
		info["usage_percent"] = percents[0]
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		info["frequency_mhz"] = infos[0].Mhz
		info["model"] = infos[0].ModelName
	}
	return info
}

func (t *SystemInfo) memoryInfo(ctx context.Context) map[string]any {
	info := make(map[string]any)
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		t.logger.Warn("memory info unavailable", zap.Error(err))
		return info
	}
	info["total"] = vm.Total
	info["available"] = vm.Available
	info["used"] = vm.Used
	info["percent"] = vm.UsedPercent
	return info
}

func (t *SystemInfo) diskInfo(ctx context.Context) map[string]any {
	info := make(map[string]any)
	usage, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		t.logger.Warn("disk info unavailable", zap.Error(err))
		return info
	}
	info["total"] = usage.Total
	info["used"] = usage.Used
	info["free"] = usage.Free
	info["percent"] = usage.UsedPercent
	return info
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
