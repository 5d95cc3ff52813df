package loader

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = `"STATE__","BGN_DATE","BGN_TIME","STATE","EVTYPE","FATALITIES","INJURIES","PROPDMG","PROPDMGEXP","CROPDMG","CROPDMGEXP"
"1","4/18/1950 0:00:00","0130","AL","TORNADO","0","15","25.0","K","0",""
"1","2/20/2011 16:00:00","1600","TX","FLOOD","2","0","2.5","M","10","K"
`

func newTestLoader() *Loader {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzipFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoad(t *testing.T) {
	t.Run("plain csv", func(t *testing.T) {
		path := writeFixture(t, "storm.csv", fixtureCSV)

		records, err := newTestLoader().Load(path)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "TORNADO", records[0].EventType)
		assert.Equal(t, "4/18/1950 0:00:00", records[0].BeginDate)
		assert.Equal(t, "0", records[0].Fatalities)
		assert.Equal(t, "15", records[0].Injuries)
		assert.Equal(t, "25.0", records[0].PropDamage)
		assert.Equal(t, "K", records[0].PropDamageExp)
		assert.Equal(t, "0", records[0].CropDamage)
		assert.Equal(t, "", records[0].CropDamageExp)

		assert.Equal(t, "FLOOD", records[1].EventType)
		assert.Equal(t, "M", records[1].PropDamageExp)
	})

	t.Run("gzip csv", func(t *testing.T) {
		path := writeGzipFixture(t, "storm.csv.gz", fixtureCSV)

		records, err := newTestLoader().Load(path)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newTestLoader().Load(filepath.Join(t.TempDir(), "nope.csv"))

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Contains(t, lerr.Error(), "nope.csv")
		assert.Contains(t, lerr.Error(), "open file")
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeFixture(t, "bad.csv", "EVTYPE,BGN_DATE\nTORNADO,4/18/1950 0:00:00\n")

		_, err := newTestLoader().Load(path)

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Contains(t, lerr.Error(), `missing required column "FATALITIES"`)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := writeFixture(t, "corrupt.csv.gz", "this is not gzip")

		_, err := newTestLoader().Load(path)

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Contains(t, lerr.Error(), "gzip")
	})

	t.Run("malformed row is fatal", func(t *testing.T) {
		path := writeFixture(t, "ragged.csv", fixtureCSV+`"only","two"`+"\n")

		_, err := newTestLoader().Load(path)

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
	})

	t.Run("header only", func(t *testing.T) {
		header := `"STATE__","BGN_DATE","BGN_TIME","STATE","EVTYPE","FATALITIES","INJURIES","PROPDMG","PROPDMGEXP","CROPDMG","CROPDMGEXP"` + "\n"
		path := writeFixture(t, "empty.csv", header)

		records, err := newTestLoader().Load(path)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
