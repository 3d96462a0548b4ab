package silicon

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/internal/advisor"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/backend"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/config"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/envtune"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/memory"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/metrics"
	"github.com/ajeetraina/Ace-Step-v1.5/internal/platform"
)

type fixedMemory struct {
	info memory.Info
}

func (f fixedMemory) Read() memory.Info { return f.info }

func gb(n int) *int { return &n }

func newFakeOptimizer(profile platform.Profile, mps, cuda backend.Capability, mem advisor.MemoryReader) *Optimizer {
	log := zap.NewNop()
	cfg := config.Default()
	backends := backend.NewProberFromCapabilities(log, mps, cuda)
	return &Optimizer{
		log:      log,
		cfg:      cfg,
		profile:  profile,
		backends: backends,
		mem:      mem,
		advisor:  advisor.New(log, profile.AppleSilicon, backends, mem, cfg.Advisor),
		tuner:    envtune.New(log, profile.AppleSilicon),
	}
}

func appleSiliconProfile() platform.Profile {
	return platform.Profile{OS: "darwin", Arch: "arm64", AppleSilicon: true}
}

func linuxProfile() platform.Profile {
	return platform.Profile{OS: "linux", Arch: "amd64"}
}

func TestNewProbesRealHost(t *testing.T) {
	o := New(zap.NewNop())
	require.NotNil(t, o)

	if o.IsAppleSilicon() {
		t.Skip("host is Apple Silicon; off-target assertions do not apply")
	}
	assert.NotEqual(t, advisor.DeviceMPS, o.OptimalDevice(true))
	assert.Nil(t, o.ApplyOptimizations())
}

func TestOptimalDevice(t *testing.T) {
	mem := fixedMemory{info: memory.Info{TotalGB: gb(16), AvailableGB: gb(8)}}

	t.Run("apple silicon prefers mps", func(t *testing.T) {
		o := newFakeOptimizer(appleSiliconProfile(), backend.CapabilityEnabled, backend.CapabilityAbsent, mem)
		assert.Equal(t, advisor.DeviceMPS, o.OptimalDevice(true))
	})

	t.Run("prefer accelerated false never yields mps", func(t *testing.T) {
		o := newFakeOptimizer(appleSiliconProfile(), backend.CapabilityEnabled, backend.CapabilityAbsent, mem)
		assert.Equal(t, advisor.DeviceCPU, o.OptimalDevice(false))
	})

	t.Run("off-target host never yields mps", func(t *testing.T) {
		o := newFakeOptimizer(linuxProfile(), backend.CapabilityAbsent, backend.CapabilityAbsent, mem)
		assert.Equal(t, advisor.DeviceCPU, o.OptimalDevice(true))
	})
}

func TestRecommendedSettingsIdempotent(t *testing.T) {
	mem := fixedMemory{info: memory.Info{TotalGB: gb(16), AvailableGB: gb(8)}}
	o := newFakeOptimizer(appleSiliconProfile(), backend.CapabilityEnabled, backend.CapabilityAbsent, mem)
	assert.Equal(t, o.RecommendedSettings(), o.RecommendedSettings())
}

func TestReportJSON(t *testing.T) {
	mem := fixedMemory{info: memory.Info{TotalGB: gb(8), AvailableGB: gb(3)}}
	o := newFakeOptimizer(appleSiliconProfile(), backend.CapabilityEnabled, backend.CapabilityDisabled, mem)

	data, err := json.Marshal(o.Report())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "darwin/arm64", decoded["platform"])
	assert.Equal(t, true, decoded["appleSilicon"])
	assert.Equal(t, "enabled", decoded["mpsCapability"])
	assert.Equal(t, "disabled", decoded["cudaCapability"])
	assert.Equal(t, "mps", decoded["optimalDevice"])

	settings, ok := decoded["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "float16", settings["precision"])
	assert.Equal(t, float64(1), settings["batchSize"])
}

func TestReportMemoryProbeFailure(t *testing.T) {
	o := newFakeOptimizer(appleSiliconProfile(), backend.CapabilityEnabled, backend.CapabilityAbsent, fixedMemory{})
	r := o.Report()
	assert.Nil(t, r.Memory.TotalGB)
	assert.Nil(t, r.Memory.AvailableGB)
	// Defaults drive the advice when probing failed.
	assert.True(t, r.Settings.OffloadToCPU)
	assert.Equal(t, 1, r.Settings.BatchSize)
}

func TestRecordMetrics(t *testing.T) {
	mem := fixedMemory{info: memory.Info{TotalGB: gb(32), AvailableGB: gb(12)}}
	o := newFakeOptimizer(appleSiliconProfile(), backend.CapabilityEnabled, backend.CapabilityAbsent, mem)

	RecordMetrics(o.Report())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AppleSiliconDetected))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.MPSAvailable))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.CUDAAvailable))
	assert.Equal(t, float64(32), testutil.ToFloat64(metrics.TotalMemoryGB))
	assert.Equal(t, float64(12), testutil.ToFloat64(metrics.AvailableMemoryGB))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.RecommendedBatchSize))
}
