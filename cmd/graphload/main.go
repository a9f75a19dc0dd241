package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/athapong/graphload/pkg/load"
	"github.com/athapong/graphload/pkg/load/executor"
	"github.com/athapong/graphload/pkg/table"
)

var (
	envFile   = flag.String("env", ".env", "Path to environment file")
	input     = flag.String("input", "", "Input file containing the records to load")
	format    = flag.String("format", "csv", "Input format (csv, jsonl)")
	mode      = flag.String("mode", "nodes", "Load mode (nodes, rels)")
	chunkSize = flag.Int("chunk-size", load.DefaultChunkSize, "Records per database round-trip")
	logLevel  = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")

	keyCol = flag.String("key", "", "Node key column (nodes mode)")
	label  = flag.String("label", "", "Node label; in rels mode the shared endpoint label")

	sourceLabel = flag.String("source-label", "", "Source endpoint label (rels mode)")
	targetLabel = flag.String("target-label", "", "Target endpoint label (rels mode)")
	sourceKey   = flag.String("source-key", "", "Source key, either a column name or property=column")
	targetKey   = flag.String("target-key", "", "Target key, either a column name or property=column")
	relType     = flag.String("rel-type", "", "Relationship type (rels mode)")
	relKey      = flag.String("rel-key", "", "Disambiguation property allowing parallel relationships")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	if *input == "" {
		logger.Fatal("Input file must be specified")
	}

	tab, err := readTable(*input, *format)
	if err != nil {
		logger.Fatalf("Failed to read input: %v", err)
	}

	exec, err := executor.New(
		os.Getenv("NEO4J_URI"),
		os.Getenv("NEO4J_USERNAME"),
		os.Getenv("NEO4J_PASSWORD"),
	)
	if err != nil {
		logger.Fatalf("Failed to create executor: %v", err)
	}
	defer exec.Close()

	ctx := context.Background()
	if err := exec.Verify(ctx); err != nil {
		logger.Fatalf("Failed to reach Neo4j: %v", err)
	}

	loader := load.New(exec,
		load.WithChunkSize(*chunkSize),
		load.WithLogger(logger),
	)

	var loaded int64
	switch *mode {
	case "nodes":
		loaded, err = loader.LoadNodes(ctx, tab, load.NodeSpec{
			Key:   load.Key(*keyCol),
			Label: *label,
		})
	case "rels":
		labels := load.Labels(*sourceLabel, *targetLabel)
		if *label != "" {
			labels = load.Label(*label)
		}
		loaded, err = loader.LoadRelationships(ctx, tab, load.RelSpec{
			Labels:    labels,
			SourceKey: parseKey(*sourceKey),
			TargetKey: parseKey(*targetKey),
			Type:      *relType,
			RelKey:    *relKey,
		})
	default:
		logger.Fatalf("Unknown mode %q", *mode)
	}
	if err != nil {
		logger.Fatalf("Load failed after %d records: %v", loaded, err)
	}

	logger.Infof("Load complete: %d records touched", loaded)
}

// parseKey accepts "column" or "property=column".
func parseKey(s string) load.KeyMapping {
	if property, column, ok := strings.Cut(s, "="); ok {
		return load.KeyAs(property, column)
	}
	return load.Key(s)
}

func readTable(path, format string) (load.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "jsonl":
		return table.ReadJSONL(f)
	default:
		return table.ReadCSV(f)
	}
}
