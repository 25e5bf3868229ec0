// internal/monitoring/health.go
package monitoring

import (
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
)

var startTime = time.Now()

type healthReport struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

// HealthHandler reports liveness plus basic host stats. Stat failures
// degrade to zeroes; the endpoint never errors.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := healthReport{
			Status: "ok",
			Uptime: time.Since(startTime).Truncate(time.Second).String(),
		}
		if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
			report.CPUPercent = pct[0]
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			report.MemoryPercent = vm.UsedPercent
		}
		if du, err := disk.Usage("/"); err == nil {
			report.DiskPercent = du.UsedPercent
		}
		httpserver.JSON(w, http.StatusOK, report)
	}
}
