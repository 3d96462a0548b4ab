package silicon

import (
	"github.com/ajeetraina/Ace-Step-v1.5/internal/metrics"
)

// RecordMetrics publishes a report's values to the process metrics registry.
func RecordMetrics(r Report) {
	metrics.AppleSiliconDetected.Set(metrics.BoolValue(r.AppleSilicon))
	metrics.MPSAvailable.Set(metrics.BoolValue(r.MPS.Available()))
	metrics.CUDAAvailable.Set(metrics.BoolValue(r.CUDA.Available()))
	if r.Memory.TotalGB != nil {
		metrics.TotalMemoryGB.Set(float64(*r.Memory.TotalGB))
	}
	if r.Memory.AvailableGB != nil {
		metrics.AvailableMemoryGB.Set(float64(*r.Memory.AvailableGB))
	}
	metrics.RecommendedBatchSize.Set(float64(r.Settings.BatchSize))
	metrics.DeviceSelected.WithLabelValues(string(r.OptimalDevice)).Inc()
}
