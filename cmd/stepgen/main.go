package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"devhome/internal/ingest"
)

// Default inspection pipeline, in run order.
var defaultSteps = []string{"configure", "build", "size", "cppcheck", "clang-tidy", "report"}

func main() {
	var (
		stepsCSV string
		outPath  string
		toStdout bool
		speed    float64
		jitter   float64
		expected time.Duration
	)

	flag.StringVar(&stepsCSV, "steps", strings.Join(defaultSteps, ","), "Comma-separated step names")
	flag.StringVar(&outPath, "out", "simulateddata/progress.ndjson", "Output file path")
	flag.BoolVar(&toStdout, "stdout", false, "Write to stdout instead of file")
	flag.Float64Var(&speed, "speed", 1.0, "Time scale; 2 runs steps twice as fast as announced")
	flag.Float64Var(&jitter, "jitter", 0.4, "Relative spread of actual step durations around the expected one")
	flag.DurationVar(&expected, "expected", 3*time.Second, "Expected duration announced for each step")
	flag.Parse()

	if speed <= 0 {
		fmt.Fprintln(os.Stderr, "speed must be positive")
		os.Exit(2)
	}
	steps := splitSteps(stepsCSV)
	if len(steps) == 0 {
		fmt.Fprintln(os.Stderr, "no steps given")
		os.Exit(2)
	}

	abort := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(abort)
	}()

	out := os.Stdout
	if !toStdout {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
			os.Exit(1)
		}
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
		fmt.Fprintf(os.Stderr, "writing %d steps to %s\n", len(steps), outPath)
	}

	w := bufio.NewWriter(out)
	emit := func(ev ingest.Event) {
		fmt.Fprintln(w, ev.Marshal())
		w.Flush()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	run := ingest.NewRunID()

	for _, name := range steps {
		emit(ingest.Event{Run: run, Step: name, Expected: expected, When: time.Now()})
	}
	for _, name := range steps {
		select {
		case <-abort:
			fmt.Fprintln(os.Stderr, "interrupted")
			return
		case <-time.After(actualDuration(rng, expected, jitter, speed)):
		}
		emit(ingest.Event{Run: run, Step: name, Done: true, When: time.Now()})
	}
}

// actualDuration spreads expected by ±jitter and scales it by speed.
func actualDuration(rng *rand.Rand, expected time.Duration, jitter, speed float64) time.Duration {
	f := 1 + jitter*(2*rng.Float64()-1)
	if f < 0.1 {
		f = 0.1
	}
	return time.Duration(float64(expected) * f / speed)
}

func splitSteps(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
