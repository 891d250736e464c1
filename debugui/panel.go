// Package debugui draws a Dear ImGui window with the engine's state and the
// driver loop's timing, for use as an overlay in a game window.
package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

// Panel keeps the tick-time history between frames.
type Panel struct {
	historyFrames int
	tickHistory   []float32
	tickIndex     int
	lastTicks     int64
}

func NewPanel(historyFrames int) *Panel {
	return &Panel{
		historyFrames: historyFrames,
		tickHistory:   make([]float32, historyFrames),
	}
}

// Record samples the last tick duration, in microseconds, if a tick happened
// since the previous call.
func (p *Panel) Record(stats driver.LoopStats) {
	if stats.Ticks.Count == p.lastTicks {
		return
	}
	p.lastTicks = stats.Ticks.Count
	p.tickHistory[p.tickIndex] = float32(stats.Ticks.LastDuration) / float32(time.Microsecond)
	p.tickIndex = (p.tickIndex + 1) % p.historyFrames
}

// History returns the samples oldest first.
func (p *Panel) History() []float32 {
	out := make([]float32, 0, p.historyFrames)
	out = append(out, p.tickHistory[p.tickIndex:]...)
	return append(out, p.tickHistory[:p.tickIndex]...)
}

// Row is one label/value line of the state table.
type Row struct {
	Label string
	Value string
}

// Summary lists the snapshot fields shown in the panel.
func Summary(snap tetris.Snapshot) []Row {
	return []Row{
		{"State", snap.State.String()},
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Board", fmt.Sprintf("%dx%d", snap.Width, snap.Height)},
		{"Active", snap.ActiveKind.String()},
		{"Next", snap.NextKind.String()},
		{"Settled squares", fmt.Sprintf("%d", len(snap.Settled))},
		{"Digest", fmt.Sprintf("%016x", snap.Digest())},
	}
}

// Render draws the window and reports whether the restart button was pressed.
func (p *Panel) Render(snap tetris.Snapshot, stats driver.LoopStats) bool {
	p.Record(stats)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)

	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return false
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("EngineState", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Field")
		imgui.TableSetupColumn("Value")
		imgui.TableHeadersRow()
		for _, row := range Summary(snap) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.Label)
			imgui.TableNextColumn()
			imgui.Text(row.Value)
		}
		imgui.EndTable()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ticks: %d  Actions: %d  Dropped: %d",
		stats.Ticks.Count, stats.Actions.Count, stats.Dropped))
	imgui.Text(fmt.Sprintf("Tick avg/max: %s / %s", stats.Ticks.AvgDuration, stats.Ticks.MaxDuration))

	imgui.Text("Tick time (us)")
	history := p.History()
	imgui.PlotLinesFloatPtr("##ticktime", &history[0], int32(len(history)))

	if len(snap.ErasedRows) > 0 {
		imgui.Text(fmt.Sprintf("Cleared: %v", snap.ErasedRows))
	}

	restart := imgui.Button("Restart")
	imgui.End()
	return restart
}
