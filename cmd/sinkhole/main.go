// Command sinkhole runs a local, single-process demonstration of the PIR
// protocol: it builds a server-side Storage of the requested size, seeds
// one entry with a known value, then plays the client role end to end
// (build a query, retrieve, decode) and reports whether the round trip
// recovered the seeded value.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/hashmatter/sinkhole/config"
	"github.com/hashmatter/sinkhole/crypto"
	"github.com/hashmatter/sinkhole/log"
	"github.com/hashmatter/sinkhole/metrics"
	"github.com/hashmatter/sinkhole/query"
	"github.com/hashmatter/sinkhole/storage"
)

var output = os.Stdout

var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

func banner() {
	fmt.Fprintf(output, "sinkhole %v (date %v, commit %v)\n", version, buildDate, gitCommit)
}

var sizeFlag = &cli.IntFlag{
	Name:  "size",
	Value: 1024,
	Usage: "number of entries N in the demo database",
}

var indexFlag = &cli.IntFlag{
	Name:  "index",
	Value: 0,
	Usage: "index i to retrieve privately, 0 <= i < size",
}

var valueFlag = &cli.Uint64Flag{
	Name:  "value",
	Value: 42,
	Usage: "value seeded at --index, recovered by the demo retrieval",
}

var bitsFlag = &cli.UintFlag{
	Name:  "bits",
	Value: 32,
	Usage: "bit-width bound k for the discrete-log decode search, 2^k",
}

var parallelFlag = &cli.IntFlag{
	Name:  "parallel-tasks",
	Value: 0,
	Usage: "worker count for Retrieve; 0 uses N_PARALLEL_TASKS or NumCPU()",
}

var jsonLogFlag = &cli.BoolFlag{
	Name:  "json-log",
	Value: true,
	Usage: "emit structured JSON logs instead of a console encoder",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "if set, verbosity is at the debug level",
}

func buildLogger(c *cli.Context) log.Logger {
	level := log.InfoLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	return log.New(os.Stderr, level, c.Bool(jsonLogFlag.Name))
}

func demoCmd(c *cli.Context) error {
	logger := buildLogger(c)

	n := c.Int(sizeFlag.Name)
	i := c.Int(indexFlag.Name)
	value := c.Uint64(valueFlag.Name)
	k := uint32(c.Uint(bitsFlag.Name))
	parallelism := c.Int(parallelFlag.Name)
	if parallelism <= 0 {
		parallelism = config.NumParallelTasks()
	}

	if i < 0 || i >= n {
		return fmt.Errorf("--index %d out of range for --size %d", i, n)
	}

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	var spin *spinner.Spinner
	if n >= 1<<16 {
		spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		spin.Suffix = fmt.Sprintf("  seeding %d entries...", n)
		spin.Start()
	}

	serverSK := crypto.GenerateKeyPair(nil).SecretKey
	store := storage.NewEmpty(serverSK, n, logger.Named("storage"))
	if err := store.Add(crypto.ScalarFromUint64(value), i); err != nil {
		if spin != nil {
			spin.Stop()
		}
		return fmt.Errorf("seeding index %d: %w", i, err)
	}

	if spin != nil {
		spin.Stop()
	}

	clientSK := crypto.GenerateKeyPair(nil).SecretKey

	buildStart := time.Now()
	q, err := query.Build(clientSK, n, i, logger.Named("query"))
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}
	logger.Infow("query built", "size", n, "index", i, "duration", time.Since(buildStart))

	retrieveStart := time.Now()
	answer, err := store.RetrieveWithParallelism(context.Background(), q.Encrypted, parallelism)
	if err != nil {
		return fmt.Errorf("retrieving: %w", err)
	}
	logger.Infow("retrieve completed", "parallelism", parallelism, "duration", time.Since(retrieveStart))

	got, err := q.ExtractResult(answer, k)
	if err != nil {
		return fmt.Errorf("decoding answer: %w", err)
	}

	want := crypto.ScalarFromUint64(value)
	fmt.Fprintf(output, "retrieved index %d of %d entries\n", i, n)
	if got.Equal(want) {
		fmt.Fprintf(output, "round trip OK: recovered seeded value %d\n", value)
		return nil
	}

	fmt.Fprintf(output, "round trip MISMATCH: expected %d, decoded scalar did not match\n", value)
	return fmt.Errorf("decoded value did not match seeded value %d", value)
}

func toArray(flags ...cli.Flag) []cli.Flag {
	return flags
}

func cliApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sinkhole"
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "sinkhole %v (date %v, commit %v)\n", version, buildDate, gitCommit)
	}
	app.Version = version
	app.Usage = "single-server private information retrieval over ElGamal ciphertexts"
	app.Commands = []*cli.Command{
		{
			Name:  "demo",
			Usage: "run a local end-to-end retrieval against a freshly seeded database",
			Flags: toArray(sizeFlag, indexFlag, valueFlag, bitsFlag, parallelFlag, jsonLogFlag, verboseFlag),
			Action: func(c *cli.Context) error {
				banner()
				return demoCmd(c)
			},
		},
	}
	app.Flags = toArray(verboseFlag, jsonLogFlag)
	return app
}

func main() {
	if err := cliApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sinkhole: %v\n", err)
		os.Exit(1)
	}
}
