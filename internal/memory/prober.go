// Package memory reads total and available system RAM. Probing is
// best-effort: any failure yields an Info with nil fields, never an error.
package memory

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

const gib = 1 << 30

// Info holds memory sizes in whole gigabytes. A nil field means its probe
// failed.
type Info struct {
	TotalGB     *int `json:"totalGb,omitempty"`
	AvailableGB *int `json:"availableGb,omitempty"`
}

// Prober reads memory fresh on every call; results are never cached, so
// AvailableGB tracks current system load.
type Prober struct {
	log           *zap.Logger
	run           platform.CommandRunner
	goos          string
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

func NewProber(log *zap.Logger, run platform.CommandRunner) *Prober {
	return &Prober{
		log:           log,
		run:           run,
		goos:          runtime.GOOS,
		virtualMemory: mem.VirtualMemory,
	}
}

// Read probes memory. On darwin the total comes from sysctl hw.memsize;
// elsewhere only the available figure is reported. A failure anywhere nils
// both fields.
func (p *Prober) Read() Info {
	var total *int
	if p.goos == "darwin" {
		out, err := p.run("sysctl", "-n", "hw.memsize")
		if err != nil {
			p.log.Debug("hw.memsize probe failed", zap.Error(err))
			return Info{}
		}
		bytes, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
		if err != nil {
			p.log.Debug("hw.memsize parse failed", zap.Error(err))
			return Info{}
		}
		gb := int(bytes / gib)
		total = &gb
	}

	vm, err := p.virtualMemory()
	if err != nil {
		p.log.Debug("available memory probe failed", zap.Error(err))
		return Info{}
	}
	avail := int(vm.Available / gib)

	return Info{TotalGB: total, AvailableGB: &avail}
}
