// Package config resolves the runtime knobs sinkhole's demo and benchmark
// tooling need: the parallel worker count (from N_PARALLEL_TASKS) and a
// TOML-loadable benchmark configuration, grounded on drand's
// key.Group/key.Private TOML marshaling and util.ParseGroupFileBytes'
// decode pattern.
package config

import (
	"bytes"
	"os"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ParallelTasksEnvVar is the environment variable that, when set to a
// parseable positive integer, overrides the default worker count used by
// the storage engine's parallel retrieval path.
const ParallelTasksEnvVar = "N_PARALLEL_TASKS"

// NumParallelTasks implements spec.md §6's N_PARALLEL_TASKS contract: an
// optional positive integer env var sets the worker count P; otherwise, or
// on any unparseable/non-positive value, P defaults to the number of
// available CPU cores.
func NumParallelTasks() int {
	val, ok := os.LookupEnv(ParallelTasksEnvVar)
	if !ok {
		return runtime.NumCPU()
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// BenchmarkConfig is the TOML-loadable shape of a demo/benchmark run: the
// database size, which index to retrieve, the bit-width bound k used for
// discrete-log decoding, and an explicit parallelism override (0 means
// "use NumParallelTasks()").
type BenchmarkConfig struct {
	DatabaseSize   int `toml:"database_size"`
	QueryIndex     int `toml:"query_index"`
	ScalarBitWidth int `toml:"scalar_bit_width"`
	Parallelism    int `toml:"parallelism"`
}

// LoadBenchmarkConfig decodes a BenchmarkConfig from TOML bytes.
func LoadBenchmarkConfig(raw []byte) (*BenchmarkConfig, error) {
	cfg := &BenchmarkConfig{}
	if _, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TOML returns the TOML-encoded bytes of cfg.
func (cfg *BenchmarkConfig) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
