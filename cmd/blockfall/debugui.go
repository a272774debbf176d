package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

const frameHistory = 120

// DebugUISystem draws the ImGui overlay. It runs first in the frame so that
// InputSystem sees whether ImGui wants the keyboard; the windows themselves
// are deferred until every system has updated.
type DebugUISystem struct {
	Scheduler *loop.Scheduler
	Keys      *Keymap

	Overlay loop.Resource[Overlay]
	Session loop.Resource[Session]
	Scores  loop.Resource[Scores]

	frames     [frameHistory]float32
	frameIndex int
}

func (s *DebugUISystem) Execute(frame *loop.Frame) {
	overlay := s.Overlay.Get()
	overlay.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	s.frames[s.frameIndex] = float32(frame.DeltaTime.Seconds() * 1000)
	s.frameIndex = (s.frameIndex + 1) % frameHistory

	if !overlay.Visible {
		return
	}
	frame.Commands.Defer(func() {
		s.renderScheduler()
		s.renderGame()
		s.renderScores()
	})
}

func (s *DebugUISystem) renderScheduler() {
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := s.Scheduler.Stats()
	var avg float32
	for _, ft := range s.frames {
		avg += ft
	}
	avg /= frameHistory

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms", avg))
	imgui.PlotLinesFloatPtr("##frametime", &s.frames[0], int32(len(s.frames)))

	imgui.Separator()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Resources") {
		for _, name := range s.Scheduler.Resources().Names() {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
	imgui.End()
}

func (s *DebugUISystem) renderGame() {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	g := s.Session.Get().Game
	state := g.State()
	active := g.Active()

	imgui.Text(fmt.Sprintf("Phase: %s", g.Phase()))
	imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", state.Score, state.Lines, state.Level))
	imgui.Text(fmt.Sprintf("Pieces: %d  Interval: %s", state.Pieces, state.Interval))
	imgui.Text(fmt.Sprintf("Active: %s (visible %t)", active.Placement, active.Visible))
	imgui.Text(fmt.Sprintf("Ghost: %s", g.Ghost()))
	preview := g.Preview()
	imgui.Text(fmt.Sprintf("Preview: %s/%d", preview.Kind, preview.Orientation))

	if imgui.TreeNodeStr("Board") {
		board := g.Board()
		for _, row := range strings.Split(strings.TrimSuffix(board.String(), "\n"), "\n") {
			imgui.Text(row)
		}
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Bindings") {
		for _, line := range s.Keys.Describe() {
			imgui.BulletText(line)
		}
		imgui.TreePop()
	}
	imgui.End()
}

func (s *DebugUISystem) renderScores() {
	if !imgui.BeginV("High Scores", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	scores := s.Scores.Get()
	if !scores.Store.Persistent() {
		imgui.Text("(not saved)")
	}
	for i, e := range scores.Store.Entries() {
		imgui.Text(fmt.Sprintf("%2d. %-10s %8d  %3d lines", i+1, e.Name, e.Score, e.Lines))
	}
	imgui.End()
}
