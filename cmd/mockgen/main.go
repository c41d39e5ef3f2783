package main

import (
	"flag"
	"fmt"
	"net/http"
	"oncall-report/cmd/mockgen/engine"
	"os"
	"time"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, noisy, nightly")
	days := flag.Int("days", 14, "Number of days before now to spread incidents over")
	count := flag.Int("count", 40, "Number of incidents to generate")
	seed := flag.Int64("seed", 1, "Random seed")
	outFile := flag.String("out", "./.cache/incidents.json", "Output file for the incidents response")
	listen := flag.String("serve", "", "Serve a fake PagerDuty /incidents endpoint on this address instead of writing a file")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Days:     *days,
		Count:    *count,
		Seed:     *seed,
		Now:      time.Now(),
	}

	incidents := engine.Generate(cfg)

	if *listen != "" {
		fmt.Printf("Serving %d '%s' incidents on http://%s/incidents (use --pd-url http://%s)\n", len(incidents), cfg.Scenario, *listen, *listen)
		if err := http.ListenAndServe(*listen, engine.Handler(incidents)); err != nil {
			fmt.Printf("Server stopped: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Generating scenario '%s' (Count: %d, Days: %d) to %s...\n", cfg.Scenario, cfg.Count, cfg.Days, *outFile)

	if err := engine.Save(*outFile, incidents); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
