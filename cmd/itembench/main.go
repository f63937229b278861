package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nresta/itembench/internal/mcp"
	"github.com/nresta/itembench/pkg/bench"
	"github.com/nresta/itembench/pkg/dataset"
	"github.com/nresta/itembench/pkg/gen"
)

const version = "0.3.0"

func usage() {
	fmt.Fprintf(os.Stderr, `ItemBench %s - synthetic transactional datasets with known ground truth

Usage:
  itembench generate -config cfg.yaml -o data.spmf [-sidecar gt.json] [-seed N] [-stats]
  itembench validate -data data.spmf -mined results.txt [-sidecar gt.json] [-tolerance 0.02]
  itembench bench    -data data.spmf -spmf-jar spmf.jar [-algos Apriori,FPGrowth] [-minsup 0.05] [-sidecar gt.json]
  itembench mcp      [-metrics-addr :9091]
  itembench version
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// smistamento dei sottocomandi, ognuno con il proprio FlagSet
	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "bench":
		runBench(os.Args[2:])
	case "mcp":
		runMCP(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(2)
	}
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path of the generation config (.yaml or .json)")
	out := fs.String("o", "data.spmf", "Output dataset path (SPMF format)")
	sidecar := fs.String("sidecar", "", "Ground-truth sidecar path (default: <output>.groundtruth.json)")
	seed := fs.Int64("seed", 0, "Override the config seed")
	workers := fs.Int("workers", 0, "Override the sampling worker count")
	stats := fs.Bool("stats", false, "Print dataset statistics as JSON")
	fs.Parse(args)

	if *configPath == "" {
		log.Fatal("missing -config")
	}
	cfg, err := gen.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}

	g, err := gen.New(cfg)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	res, err := g.Generate()
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	if err := dataset.WriteFile(*out, res.Dataset); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}
	sidecarPath := *sidecar
	if sidecarPath == "" {
		sidecarPath = *out + ".groundtruth.json"
	}
	if err := res.GroundTruth.WriteFile(sidecarPath); err != nil {
		log.Fatalf("failed to write ground truth: %v", err)
	}
	log.Printf("dataset written to %s (ground truth: %s)", *out, sidecarPath)

	if *stats {
		printJSON(res.Dataset.ComputeStats())
	}
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	dataPath := fs.String("data", "", "Generated dataset (SPMF format)")
	sidecarPath := fs.String("sidecar", "", "Ground-truth sidecar JSON (optional, reduces confidence when absent)")
	minedPath := fs.String("mined", "", "Miner output file to score")
	tolerance := fs.Float64("tolerance", bench.DefaultTolerance, "Absolute support tolerance")
	fs.Parse(args)

	if *dataPath == "" || *minedPath == "" {
		log.Fatal("missing -data or -mined")
	}
	d, err := dataset.ReadFile(*dataPath, 0)
	if err != nil {
		log.Fatalf("failed to read dataset: %v", err)
	}
	mined, skipped, err := bench.ParseResultFile(*minedPath)
	if err != nil {
		log.Fatalf("failed to parse mined results: %v", err)
	}
	if skipped > 0 {
		log.Printf("WARNING: %d malformed result lines skipped", skipped)
	}

	var patterns []gen.PatternSpec
	var hosts map[string][]int
	if *sidecarPath != "" {
		gt, err := gen.ReadGroundTruth(*sidecarPath)
		if err != nil {
			log.Fatalf("failed to read ground truth: %v", err)
		}
		patterns = gt.Config.Patterns
		hosts = gt.Hosts
	} else {
		log.Print("no sidecar given: support-proximity matching only")
	}

	v := bench.NewValidator(*tolerance)
	v.Dataset = d
	printJSON(v.Validate(mined, patterns, hosts, d.Len()))
}

func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	dataPath := fs.String("data", "", "Dataset to mine (SPMF format)")
	sidecarPath := fs.String("sidecar", "", "Ground-truth sidecar JSON (optional)")
	jarPath := fs.String("spmf-jar", "spmf.jar", "Path of the SPMF jar")
	algos := fs.String("algos", "Apriori,FPGrowth", "Comma-separated list of SPMF algorithms")
	minsup := fs.Float64("minsup", 0.05, "Minimum support passed to the miner")
	timeout := fs.Duration("timeout", 5*time.Minute, "Per-algorithm timeout")
	outDir := fs.String("out-dir", ".", "Directory for miner output files")
	tolerance := fs.Float64("tolerance", bench.DefaultTolerance, "Absolute support tolerance for validation")
	fs.Parse(args)

	if *dataPath == "" {
		log.Fatal("missing -data")
	}
	d, err := dataset.ReadFile(*dataPath, 0)
	if err != nil {
		log.Fatalf("failed to read dataset: %v", err)
	}
	runner, err := bench.NewRunner(*jarPath)
	if err != nil {
		log.Fatal(err)
	}

	var patterns []gen.PatternSpec
	var hosts map[string][]int
	if *sidecarPath != "" {
		gt, err := gen.ReadGroundTruth(*sidecarPath)
		if err != nil {
			log.Fatalf("failed to read ground truth: %v", err)
		}
		patterns = gt.Config.Patterns
		hosts = gt.Hosts
	}

	var results []bench.AlgorithmResult
	for _, name := range strings.Split(*algos, ",") {
		algo := bench.Algorithm(strings.TrimSpace(name))
		outPath := fmt.Sprintf("%s/%s_%s.txt", *outDir, strings.ToLower(string(algo)), "results")

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		run, err := runner.Run(ctx, algo, *dataPath, outPath, *minsup)
		cancel()
		if err != nil {
			log.Printf("WARNING: %s failed: %v", algo, err)
			continue
		}

		ar := bench.AlgorithmResult{Algorithm: algo, Duration: run.Duration, Found: len(run.Mined)}
		if patterns != nil {
			v := bench.NewValidator(*tolerance)
			v.Dataset = d
			ar.Summary = v.Validate(run.Mined, patterns, hosts, d.Len())
		}
		results = append(results, ar)
	}

	if err := bench.WriteReport(os.Stdout, d.ComputeStats(), results); err != nil {
		log.Fatal(err)
	}
}

func runMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	metricsAddr := fs.String("metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9091)")
	fs.Parse(args)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics listening on %s", *metricsAddr)
			log.Fatal(http.ListenAndServe(*metricsAddr, mux))
		}()
	}

	// contesto annullato dal segnale di interruzione (Ctrl+C)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewMCPServer(version)
	log.Printf("ItemBench MCP server %s on stdio", version)
	if err := srv.Run(ctx, &mcpsdk.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Fatalf("mcp server stopped: %v", err)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
