package main

import (
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const confidence = 0.95

// Stats summarises one metric over all games.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	P50    float64
	P90    float64
	Max    float64
	// CILo and CIHi bound the mean at the report's confidence level.
	CILo float64
	CIHi float64
}

func newStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Stats{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		P50: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90: stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if len(sorted) == 1 {
		s.Mean = sorted[0]
		s.CILo, s.CIHi = s.Mean, s.Mean
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	half := distuv.UnitNormal.Quantile(1-(1-confidence)/2) * s.StdDev / math.Sqrt(float64(len(sorted)))
	s.CILo, s.CIHi = s.Mean-half, s.Mean+half
	return s
}

// proportionCI is the Clopper-Pearson interval for k successes out of n.
func proportionCI(k, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	alpha := 1 - confidence
	if k > 0 {
		lo = distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(alpha / 2)
	}
	hi = 1
	if k < n {
		hi = distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(1 - alpha/2)
	}
	return lo, hi
}

// Report is the summary of a batch of games.
type Report struct {
	// Configuration
	Games     int
	Workers   int
	MaxPieces int
	Seed      uint64

	// Results
	Played    int
	TotalTime time.Duration
	Frames    uint64
	GameTime  Stats
	Score     Stats
	Lines     Stats
	Pieces    Stats
	Clears    [5]int
	Survived  int
	Capped    int
}

// Summarize folds results into r.
func (r *Report) Summarize(results []Result) {
	var (
		scores = make([]float64, 0, len(results))
		lines  = make([]float64, 0, len(results))
		pieces = make([]float64, 0, len(results))
		times  = make([]float64, 0, len(results))
	)
	r.Played = len(results)
	r.Frames = 0
	r.Survived = 0
	r.Capped = 0
	r.Clears = [5]int{}
	for _, res := range results {
		scores = append(scores, float64(res.Score))
		lines = append(lines, float64(res.Lines))
		pieces = append(pieces, float64(res.Pieces))
		times = append(times, float64(res.Elapsed))
		r.Frames += res.Frames
		switch {
		case res.Capped:
			r.Capped++
		case !res.Over:
			r.Survived++
		}
		for i, n := range res.Clears {
			r.Clears[i] += n
		}
	}
	r.Score = newStats(scores)
	r.Lines = newStats(lines)
	r.Pieces = newStats(pieces)
	r.GameTime = newStats(times)
}

// Generate writes the report as a set of bordered tables.
func (r *Report) Generate(w io.Writer, lang language.Tag) error {
	p := message.NewPrinter(lang)
	var sb strings.Builder

	rate := 0.0
	if r.TotalTime > 0 {
		rate = float64(r.Frames) / r.TotalTime.Seconds()
	}
	sb.WriteString(fmtTable(p, "Run",
		[]string{"games", "workers", "max pieces", "seed", "total time", "frames", "frames/s", "game time avg", "game time max"},
		map[string]string{
			"games":         p.Sprintf("%d / %d", r.Played, r.Games),
			"workers":       p.Sprintf("%d", r.Workers),
			"max pieces":    p.Sprintf("%d", r.MaxPieces),
			"seed":          p.Sprintf("%d", r.Seed),
			"total time":    formatDuration(r.TotalTime),
			"frames":        p.Sprintf("%d", r.Frames),
			"frames/s":      p.Sprintf("%.0f", rate),
			"game time avg": formatDuration(time.Duration(r.GameTime.Mean)),
			"game time max": formatDuration(time.Duration(r.GameTime.Max)),
		}))

	sb.WriteString(statsTable(p, "Score", r.Score))
	sb.WriteString(statsTable(p, "Lines", r.Lines))
	sb.WriteString(statsTable(p, "Pieces", r.Pieces))

	lo, hi := proportionCI(r.Survived, r.Played)
	survival := 0.0
	if r.Played > 0 {
		survival = float64(r.Survived) / float64(r.Played)
	}
	sb.WriteString(fmtTable(p, "Clears",
		[]string{"single", "double", "triple", "tetris", "survived", "survival CI", "capped"},
		map[string]string{
			"single":      p.Sprintf("%d", r.Clears[1]),
			"double":      p.Sprintf("%d", r.Clears[2]),
			"triple":      p.Sprintf("%d", r.Clears[3]),
			"tetris":      p.Sprintf("%d", r.Clears[4]),
			"survived":    p.Sprintf("%d (%.1f%%)", r.Survived, survival*100),
			"survival CI": p.Sprintf("%.1f%% - %.1f%%", lo*100, hi*100),
			"capped":      p.Sprintf("%d", r.Capped),
		}))

	_, err := io.WriteString(w, sb.String())
	return err
}

func statsTable(p *message.Printer, title string, s Stats) string {
	return fmtTable(p, title,
		[]string{"mean", "std dev", "mean CI", "min", "median", "p90", "max"},
		map[string]string{
			"mean":    p.Sprintf("%.1f", s.Mean),
			"std dev": p.Sprintf("%.1f", s.StdDev),
			"mean CI": p.Sprintf("%.1f - %.1f", s.CILo, s.CIHi),
			"min":     p.Sprintf("%.0f", s.Min),
			"median":  p.Sprintf("%.0f", s.P50),
			"p90":     p.Sprintf("%.0f", s.P90),
			"max":     p.Sprintf("%.0f", s.Max),
		})
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}

func fmtTable(p *message.Printer, title string, keys []string, msg map[string]string) string {
	keyW := runewidth.StringWidth(title)
	valW := 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(msg[k]))
	}
	keyW += 2
	valW += 2

	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"
	top := "+" + strings.Repeat("-", keyW+1+valW) + "+\n"

	inner := keyW + valW + 1
	titleW := runewidth.StringWidth(title)
	left := (inner - titleW) / 2
	right := inner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n",
			k, blank(keyW-2-runewidth.StringWidth(k)),
			v, blank(valW-2-runewidth.StringWidth(v))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
