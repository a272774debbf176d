package main

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestNewStats(t *testing.T) {
	s := newStats([]float64{5, 1, 4, 2, 3})
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 3.0, s.P50)
	assert.Equal(t, 5.0, s.P90)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev, 1e-9)
	assert.Less(t, s.CILo, s.Mean)
	assert.Greater(t, s.CIHi, s.Mean)
	assert.InDelta(t, s.Mean-s.CILo, s.CIHi-s.Mean, 1e-9)

	t.Run("single value", func(t *testing.T) {
		s := newStats([]float64{7})
		assert.Equal(t, Stats{Mean: 7, Min: 7, P50: 7, P90: 7, Max: 7, CILo: 7, CIHi: 7}, s)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Stats{}, newStats(nil))
	})
}

func TestProportionCI(t *testing.T) {
	lo, hi := proportionCI(0, 20)
	assert.Equal(t, 0.0, lo)
	assert.Greater(t, hi, 0.0)
	assert.Less(t, hi, 0.25)

	lo, hi = proportionCI(20, 20)
	assert.Equal(t, 1.0, hi)
	assert.Greater(t, lo, 0.75)

	lo, hi = proportionCI(10, 20)
	assert.Less(t, lo, 0.5)
	assert.Greater(t, hi, 0.5)

	lo, hi = proportionCI(0, 0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestReport(t *testing.T) {
	results := []Result{
		{Game: 0, Score: 1200, Lines: 10, Pieces: 50, Frames: 400, Clears: [5]int{0, 4, 1, 0, 1}},
		{Game: 1, Score: 300, Lines: 2, Pieces: 20, Frames: 100, Over: true, Clears: [5]int{0, 0, 1, 0, 0}},
	}
	r := &Report{Games: 2, Workers: 1, MaxPieces: 50, Seed: 1, TotalTime: time.Second}
	r.Summarize(results)

	assert.Equal(t, 2, r.Played)
	assert.Equal(t, uint64(500), r.Frames)
	assert.Equal(t, 1, r.Survived)
	assert.Equal(t, [5]int{0, 4, 2, 0, 1}, r.Clears)
	assert.Equal(t, 750.0, r.Score.Mean)

	var sb strings.Builder
	require.NoError(t, r.Generate(&sb, language.English))
	out := sb.String()

	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "| 1,200")
	assert.Contains(t, out, "| 750.0")
	assert.Contains(t, out, "1 (50.0%)")

	// Every row of a table has the same display width.
	for _, table := range strings.Split(strings.TrimSuffix(out, "\n"), "+\n+") {
		lines := strings.Split(table, "\n")
		width := runewidth.StringWidth(strings.Trim(lines[0], "+"))
		for _, line := range lines[1:] {
			assert.Equal(t, width, runewidth.StringWidth(strings.Trim(line, "+|")), "%q", line)
		}
	}
}

func TestSummarizeSkipsCappedGames(t *testing.T) {
	results := []Result{
		{Game: 0, Pieces: 50},
		{Game: 1, Pieces: 31, Capped: true},
		{Game: 2, Pieces: 12, Over: true},
	}
	r := &Report{Games: 3, MaxPieces: 50}
	r.Summarize(results)

	assert.Equal(t, 1, r.Survived)
	assert.Equal(t, 1, r.Capped)

	var sb strings.Builder
	require.NoError(t, r.Generate(&sb, language.English))
	assert.Contains(t, sb.String(), "1 (33.3%)")
}

func TestFmtTableWideRunes(t *testing.T) {
	p := message.NewPrinter(language.English)
	out := fmtTable(p, "分數", []string{"平均"}, map[string]string{"平均": "12"})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(line), "%q", line)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	results := []Result{
		{Game: 0, Seed: 5, Score: 100, Lines: 1, Level: 1, Pieces: 12, Clears: [5]int{0, 1}, Frames: 90, Elapsed: time.Millisecond},
		{Game: 1, Seed: 6, Score: 0, Pieces: 7, Over: true, Frames: 40},
	}
	for _, name := range []string{"games.jsonl", "games.jsonl.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, writeRecords(path, results))

			got, err := readRecords(path)
			require.NoError(t, err)
			assert.Equal(t, results, got)
		})
	}

	t.Run("missing directory", func(t *testing.T) {
		err := writeRecords(filepath.Join(t.TempDir(), "nope", "games.jsonl"), results)
		assert.Error(t, err)
	})
}
