// Command genstorm generates a synthetic Storm Events CSV fixture for tests
// and demos. It runs the generated rows through the actual domain package so
// the logged per-category tallies match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genstorm -out testdata/storm_fixture.csv.gz -rows 5000 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// header mirrors the column subset and naming of the bulk Storm Events file,
// including a few columns the report does not consume, so fixtures exercise
// column selection by name.
var header = []string{"STATE__", "BGN_DATE", "BGN_TIME", "STATE", "EVTYPE", "FATALITIES", "INJURIES", "PROPDMG", "PROPDMGEXP", "CROPDMG", "CROPDMGEXP"}

// eventTypes weights the synthetic categories roughly like the real data:
// tornadoes dominate, near-duplicate hurricane labels included on purpose.
var eventTypes = []struct {
	name   string
	weight int
}{
	{"TORNADO", 40},
	{"TSTM WIND", 20},
	{"FLOOD", 12},
	{"EXCESSIVE HEAT", 8},
	{"LIGHTNING", 8},
	{"HURRICANE", 4},
	{"HURRICANE/TYPHOON", 4},
	{"HEAT", 4},
}

// exponent codes drawn per damage field: mostly documented letters, a couple
// of numeric tokens, and the undocumented junk codes present in the real file.
var exponentCodes = []string{"K", "K", "K", "M", "m", "B", "", "3", "5", "+", "?", "h"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the fixture (.csv or .csv.gz)")
	rows := flag.Int("rows", 5000, "number of data rows to generate")
	seed := flag.Int64("seed", 1, "PRNG seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	raws := make([]domain.RawEventRecord, 0, *rows)
	for i := 0; i < *rows; i++ {
		raws = append(raws, randomRecord(rng))
	}

	if err := writeCSV(*out, raws); err != nil {
		return err
	}

	// Tally through the real normalization path so the logged figures are
	// exactly what the pipeline will compute from this fixture.
	normalized := make([]domain.NormalizedRecord, 0, len(raws))
	excluded := 0
	for _, raw := range raws {
		rec, _, err := domain.Normalize(raw)
		if err != nil {
			excluded++
			continue
		}
		normalized = append(normalized, rec)
	}
	for _, row := range domain.Aggregate(normalized) {
		log.Printf("pre1970=%v %-20s fatalities=%d injuries=%d damage=%s",
			row.Pre1970, row.EventType, row.Fatalities, row.Injuries, row.TotalDamage.String())
	}
	log.Printf("total: %d rows, %d excluded by date parse", len(raws), excluded)

	return nil
}

func randomRecord(rng *rand.Rand) domain.RawEventRecord {
	// Dates span 1950-2011 like the real file; a small fraction are
	// malformed to exercise row exclusion.
	date := randomDate(rng)
	if rng.Intn(200) == 0 {
		date = "not a date"
	}

	return domain.RawEventRecord{
		EventType:     pickEventType(rng),
		BeginDate:     date,
		Fatalities:    strconv.Itoa(rng.Intn(5)),
		Injuries:      strconv.Itoa(rng.Intn(40)),
		PropDamage:    fmt.Sprintf("%.2f", rng.Float64()*500),
		PropDamageExp: exponentCodes[rng.Intn(len(exponentCodes))],
		CropDamage:    fmt.Sprintf("%.2f", rng.Float64()*50),
		CropDamageExp: exponentCodes[rng.Intn(len(exponentCodes))],
	}
}

func randomDate(rng *rand.Rand) string {
	year := 1950 + rng.Intn(62)
	t := time.Date(year, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), rng.Intn(24), rng.Intn(60), 0, 0, time.UTC)
	return fmt.Sprintf("%d/%d/%d %d:%02d:%02d", t.Month(), t.Day(), t.Year(), t.Hour(), t.Minute(), t.Second())
}

func pickEventType(rng *rand.Rand) string {
	total := 0
	for _, et := range eventTypes {
		total += et.weight
	}
	n := rng.Intn(total)
	for _, et := range eventTypes {
		n -= et.weight
		if n < 0 {
			return et.name
		}
	}
	return eventTypes[0].name
}

func writeCSV(path string, raws []domain.RawEventRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	state := 0
	for _, r := range raws {
		state++
		row := []string{
			strconv.Itoa(state), r.BeginDate, "0000", "TX", r.EventType,
			r.Fatalities, r.Injuries, r.PropDamage, r.PropDamageExp, r.CropDamage, r.CropDamageExp,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return err
		}
	}
	return f.Close()
}
