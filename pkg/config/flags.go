package config

import "flag"

// GetFlags registers the engine flags on fs and returns a closure to run
// after parsing.
func GetFlags(fs *flag.FlagSet, cfg *Config) func() {
	var noGPU bool
	fs.BoolVar(&noGPU, "no-gpu", false, "Skip the vendor GPU sensor probe")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "Emit one JSON object per sample")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Output file path (snapshot only)")
	fs.IntVar(&cfg.Count, "count", cfg.Count, "Stop after N samples (0 = run until interrupted)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")

	return func() {
		if noGPU {
			cfg.EnableGPUSensors = false
		}
	}
}
