// Command plan prints one itinerary and exits.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"metro-planner/internal/config"
	"metro-planner/internal/itinerary"
	"metro-planner/internal/loader"
	"metro-planner/internal/network"
	"metro-planner/internal/planner"
)

func main() {
	from := flag.String("from", "", "origin station ID")
	to := flag.String("to", "", "destination station ID")
	asJSON := flag.Bool("json", false, "print the itinerary as JSON")
	flag.Parse()

	if *from == "" || *to == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	net, err := loader.Load(context.Background(), cfg)
	if err != nil {
		log.Fatalf("load network: %v", err)
	}
	graph, err := network.Build(net.Lines, net.Stations)
	if err != nil {
		log.Fatalf("build network: %v", err)
	}

	p := planner.New(graph, planner.WithMinutes(cfg.StationMinutes, cfg.TransferMinutes))
	it, err := p.Plan(*from, *to)
	if err != nil {
		log.Fatalf("plan %s -> %s: %v", *from, *to, err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(it); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}
	printItinerary(graph, it)
}

func printItinerary(g *network.Graph, it *itinerary.Itinerary) {
	fmt.Printf("%s -> %s\n", g.StationName(it.Origin), g.StationName(it.Destination))
	for _, s := range it.Segments {
		switch s.Kind {
		case itinerary.KindTravel:
			fmt.Printf("  %-8s %s -> %s (%d stations, %d min)\n", s.Line, s.From, s.To, s.StationCount, s.Minutes)
		case itinerary.KindTransfer:
			fmt.Printf("  change   %s -> %s (%d min)\n", s.FromLine, s.ToLine, s.Minutes)
		}
	}
	fmt.Printf("total: %d min, %d stations, %d transfers\n", it.TotalMinutes, it.TotalStations, it.TransferCount)
}
