// Package envtune writes the environment variables that tune the external ML
// runtime on Apple Silicon. The runtime reads them once at its own startup,
// so Apply must run early and at most once per process.
package envtune

import (
	"os"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/zap"
)

const (
	maxThreads      = 8
	fallbackThreads = 4
)

// Setting is a single environment assignment.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Tuner applies the fixed optimization table.
type Tuner struct {
	log          *zap.Logger
	appleSilicon bool
	cpuCounts    func(logical bool) (int, error)
}

func New(log *zap.Logger, appleSilicon bool) *Tuner {
	return &Tuner{
		log:          log,
		appleSilicon: appleSilicon,
		cpuCounts:    cpu.Counts,
	}
}

// Apply sets the tuning variables and returns what was written. Off Apple
// Silicon it mutates nothing and returns nil.
func (t *Tuner) Apply() []Setting {
	if !t.appleSilicon {
		return nil
	}

	threads := strconv.Itoa(t.threadBudget())
	settings := []Setting{
		{"PYTORCH_ENABLE_MPS_FALLBACK", "1"},
		{"PYTORCH_MPS_HIGH_WATERMARK_RATIO", "0.0"},
		{"MALLOC_ARENA_MAX", "4"},
		{"OMP_NUM_THREADS", threads},
		{"MKL_NUM_THREADS", threads},
		{"OPENBLAS_NUM_THREADS", threads},
		{"VECLIB_MAXIMUM_THREADS", threads},
		{"TOKENIZERS_PARALLELISM", "false"},
	}
	for _, s := range settings {
		if err := os.Setenv(s.Key, s.Value); err != nil {
			t.log.Warn("failed to set environment variable",
				zap.String("key", s.Key), zap.Error(err))
		}
	}
	t.log.Info("applied Apple Silicon optimizations",
		zap.Int("variables", len(settings)), zap.String("threads", threads))
	return settings
}

// threadBudget caps numeric-library threads at 8; the efficiency cores past
// that point cost more in contention than they add.
func (t *Tuner) threadBudget() int {
	n, err := t.cpuCounts(true)
	if err != nil || n <= 0 {
		n = fallbackThreads
	}
	if n > maxThreads {
		n = maxThreads
	}
	return n
}
