// Command gen-events writes a synthetic jet dataset to a JSON file so
// analyses can be replayed from disk instead of regenerated.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hepworks/trijet.report/internal/dataset"
)

var (
	outFile = flag.String("out", "events.json", "Output dataset path (.json)")
	events  = flag.Int("events", 1000, "Number of events to generate")
	seed    = flag.Uint64("seed", 42, "Generator seed")
	name    = flag.String("name", "", "Dataset name (default: generator name)")
)

func main() {
	flag.Parse()

	if *events <= 0 {
		log.Fatalf("-events must be positive, got %d", *events)
	}

	src := dataset.NewSynthetic(*events, *seed)
	batch, err := src.Batch()
	if err != nil {
		log.Fatalf("failed to generate events: %v", err)
	}
	if *name != "" {
		batch.Name = *name
	}

	if err := dataset.WriteFile(*outFile, batch); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}

	counts := batch.JetCounts()
	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Printf("wrote %d events (%d jets) to %s\n", batch.Len(), total, *outFile)
}
