// Package advisor turns probe results into runtime settings for the
// inference engine: which device to run on, whether to offload weights to
// CPU, batch size, and numeric precision.
package advisor

import (
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/config"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/memory"
)

// Device is the compute device recommended for inference.
type Device string

const (
	DeviceMPS  Device = "mps"
	DeviceCUDA Device = "cuda"
	DeviceCPU  Device = "cpu"
)

// Settings is the recommended runtime configuration.
type Settings struct {
	Device            Device `json:"device"`
	OffloadToCPU      bool   `json:"offloadToCpu"`
	OffloadDiTToCPU   bool   `json:"offloadDitToCpu"`
	UseFlashAttention bool   `json:"useFlashAttention"`
	Backend           string `json:"backend"`
	BatchSize         int    `json:"batchSize"`
	Precision         string `json:"precision"`
}

// BackendProber reports compute backend availability.
type BackendProber interface {
	MPSAvailable() bool
	CUDAAvailable() bool
}

// MemoryReader reads current system memory.
type MemoryReader interface {
	Read() memory.Info
}

// Advisor derives settings from the host profile and live memory readings.
// Every call recomputes from fresh probe results; nothing is cached here.
type Advisor struct {
	log          *zap.Logger
	appleSilicon bool
	backends     BackendProber
	mem          MemoryReader
	cfg          config.AdvisorConfig
}

func New(log *zap.Logger, appleSilicon bool, backends BackendProber, mem MemoryReader, cfg config.AdvisorConfig) *Advisor {
	return &Advisor{
		log:          log,
		appleSilicon: appleSilicon,
		backends:     backends,
		mem:          mem,
		cfg:          cfg,
	}
}

// OptimalDevice picks the compute device. MPS wins when the host is Apple
// Silicon, the caller prefers acceleration, and the backend is up; otherwise
// CUDA if present; otherwise CPU.
func (a *Advisor) OptimalDevice(preferAccelerated bool) Device {
	if a.appleSilicon && preferAccelerated && a.backends.MPSAvailable() {
		return DeviceMPS
	}
	if a.backends.CUDAAvailable() {
		return DeviceCUDA
	}
	return DeviceCPU
}

// Recommend derives the full settings table from current memory readings.
// When the memory probe failed, DefaultTotalGB stands in for total RAM.
func (a *Advisor) Recommend() Settings {
	info := a.mem.Read()
	total := a.cfg.DefaultTotalGB
	if info.TotalGB != nil {
		total = *info.TotalGB
	}

	precision := "float32"
	if a.backends.MPSAvailable() {
		precision = "float16"
	}

	s := Settings{
		Device:          a.OptimalDevice(true),
		OffloadToCPU:    total < a.cfg.OffloadThresholdGB,
		OffloadDiTToCPU: total < a.cfg.DiTOffloadThresholdGB,
		// Flash attention has no reliable ARM64 path yet.
		UseFlashAttention: false,
		Backend:           "pt",
		BatchSize:         clamp(total/a.cfg.BatchDivisorGB, 1, a.cfg.MaxBatchSize),
		Precision:         precision,
	}
	a.log.Debug("derived settings",
		zap.Int("totalGB", total),
		zap.String("device", string(s.Device)),
		zap.Int("batchSize", s.BatchSize))
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
