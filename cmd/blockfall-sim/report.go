package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	// Configuration
	Width       int
	Height      int
	Seed        uint64
	Duration    time.Duration
	Steps       int64
	TickEvery int

	// Results
	TotalTime     time.Duration
	Loop          driver.LoopStats
	GamesStarted  int
	GamesFinished int
	RowsCleared   int
	Scores        ScoreStats
	Settled       []KindCount
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type ScoreStats struct {
	Min    int
	Max    int
	Avg    float64
	Median int
}

type KindCount struct {
	Kind  tetris.Kind
	Count int
}

func newScoreStats(scores []int) ScoreStats {
	if len(scores) == 0 {
		return ScoreStats{}
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)

	total := 0
	for _, s := range sorted {
		total += s
	}
	return ScoreStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Avg:    float64(total) / float64(len(sorted)),
		Median: sorted[len(sorted)/2],
	}
}

// fill copies the tally into the report, listing kinds in their fixed order.
func (r *Report) fill(t *tally) {
	r.GamesStarted = t.games
	r.GamesFinished = len(t.scores)
	r.RowsCleared = t.rows
	r.Scores = newScoreStats(t.scores)
	r.Settled = r.Settled[:0]
	for _, k := range tetris.Kinds {
		r.Settled = append(r.Settled, KindCount{Kind: k, Count: t.settled[k]})
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Board:** {{.Width}}x{{.Height}}
- **Seed:** {{.Seed}}
- **Run Limit:** {{.Duration}}{{if gt .Steps 0}} or {{.Steps}} steps{{end}}
- **Tick Every:** {{.TickEvery}} steps (on average)

## Games
- **Started:** {{.GamesStarted}}
- **Finished:** {{.GamesFinished}}
- **Rows Cleared:** {{.RowsCleared}}
- **Score:** min {{.Scores.Min}}, median {{.Scores.Median}}, avg {{printf "%.2f" .Scores.Avg}}, max {{.Scores.Max}}

## Pieces Settled
{{range .Settled}}- {{.Kind}}: {{.Count}}
{{end}}
## Engine Calls
- **Total Time:** {{.TotalTime}}
- **Ticks:** {{.Loop.Ticks.Count}} (avg {{.Loop.Ticks.AvgDuration}}, min {{.Loop.Ticks.MinDuration}}, max {{.Loop.Ticks.MaxDuration}})
- **Actions:** {{.Loop.Actions.Count}} (avg {{.Loop.Actions.AvgDuration}}, min {{.Loop.Actions.MinDuration}}, max {{.Loop.Actions.MaxDuration}})

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
