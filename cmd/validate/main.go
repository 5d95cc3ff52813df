// Command validate performs a preflight integrity check on a Storm Events
// dataset before a report run: header columns, row counts, begin-date parse
// rate, exponent-code quality, and per-category coverage.
//
// Usage:
//
//	go run ./cmd/validate -input data/StormData.csv.bz2
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the Storm Events dataset (.csv, .csv.gz, .csv.bz2)")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*input))
}

func run(input string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	phases := []*phase{}
	report := func(p *phase) {
		phases = append(phases, p)
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	loadPhase := &phase{name: "load"}
	raws, err := loader.New(logger).Load(input)
	if err != nil {
		loadPhase.errorf("%v", err)
		report(loadPhase)
		return 1
	}
	if len(raws) == 0 {
		loadPhase.errorf("dataset has a valid header but no data rows")
	}
	report(loadPhase)

	datePhase := &phase{name: "begin dates"}
	codePhase := &phase{name: "exponent codes"}
	coveragePhase := &phase{name: "category coverage"}

	parsed := 0
	unknownCodes := map[string]int{}
	categories := map[string]int{}
	for _, raw := range raws {
		if _, err := domain.ParseBeginDate(raw.BeginDate); err == nil {
			parsed++
		}
		for _, code := range []string{raw.PropDamageExp, raw.CropDamageExp} {
			if _, ok := domain.Multiplier(code); !ok {
				unknownCodes[code]++
			}
		}
		categories[raw.EventType]++
	}

	if len(raws) > 0 {
		rate := float64(parsed) / float64(len(raws))
		fmt.Printf("begin dates: %d/%d parse (%.2f%%)\n", parsed, len(raws), rate*100)
		// Below half parseable the file is almost certainly not in the fixed
		// source format, whatever the header says.
		if rate < 0.5 {
			datePhase.errorf("only %.2f%% of begin dates match M/D/YYYY H:MM:SS", rate*100)
		}
	}
	report(datePhase)

	if len(unknownCodes) > 0 {
		codes := make([]string, 0, len(unknownCodes))
		for c := range unknownCodes {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		for _, c := range codes {
			fmt.Printf("unrecognized exponent code %q in %d fields (damage will be zeroed)\n", c, unknownCodes[c])
		}
	}
	report(codePhase)

	fmt.Printf("categories: %d distinct labels\n", len(categories))
	if len(categories) == 0 {
		coveragePhase.errorf("no event categories found")
	}
	report(coveragePhase)

	for _, p := range phases {
		if !p.passed() {
			return 1
		}
	}
	return 0
}
