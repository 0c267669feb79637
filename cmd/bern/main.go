// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/bern-rtos/bern-rtos/config"
	"github.com/bern-rtos/bern-rtos/sim"
	"github.com/bern-rtos/bern-rtos/trace"
)

func main() {
	var system string
	var ticks int
	var verbose bool
	var events bool

	flag.StringVar(&system, "c", "", ".star system file to simulate")
	flag.IntVar(&ticks, "t", 100, "Number of ticks to simulate")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&events, "e", false, "Log kernel trace events")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}
	if len(system) == 0 {
		log.Fatalf("%v: No system file, use -c", os.Args[0])
	}

	cfg, err := config.Load(system, nil)
	if err != nil {
		log.Fatalf("%v: %v", system, err)
	}

	if events {
		trace.SetRecorder(logTracer{})
	}

	s, err := sim.FromConfig(cfg, nil)
	if err != nil {
		log.Fatalf("%v: %v", system, err)
	}
	s.Verbose = verbose

	if err := s.Run(ticks); err != nil {
		log.Fatal(err)
	}

	s.DumpStats()
}
