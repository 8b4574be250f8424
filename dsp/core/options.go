package core

import "time"

// ProcessorConfig holds the settings shared by streaming processors.
//
// BlockSize is the largest block a caller intends to pass per call; processors
// that accept variable block sizes pre-size their scratch storage from it so
// that the processing path does not allocate.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// Duration converts a sample count to time at the configured sample rate.
func (c ProcessorConfig) Duration(samples int) time.Duration {
	return time.Duration(float64(samples) / c.SampleRate * float64(time.Second))
}

// Samples converts a duration to the nearest whole number of samples.
func (c ProcessorConfig) Samples(d time.Duration) int {
	return int(d.Seconds()*c.SampleRate + 0.5)
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz and 1024-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  1024,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the expected maximum block size. Non-positive values are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
