package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/amichip/internal/amiga"
	"github.com/nevisdale/amichip/internal/logger"
	"github.com/nevisdale/amichip/internal/video"
	"golang.design/x/clipboard"
)

// P - pause
// R - one cycle and stop
// F - one frame and stop
// C - cycle through the bitplanes shown
// Y - copy the chip registers to the clipboard

const (
	screenScale  = 2
	screenWidth  = 320
	screenHeight = 256

	debugWidth  = 300
	debugHeight = screenHeight * screenScale

	// updates to wait for a requested snapshot before asking again
	snapshotTimeout = 30
)

type UI struct {
	m *amiga.Machine

	snapshots chan snapshot
	snap      snapshot
	waiting   int

	// 0 shows all bitplanes, n shows bitplane n alone
	plane int

	screen *ebiten.Image
	pixels []byte

	clipboard bool
}

func New(m *amiga.Machine) *UI {
	ui := &UI{
		m:         m,
		snapshots: make(chan snapshot, 1),
		screen:    ebiten.NewImage(screenWidth, screenHeight),
		pixels:    make([]byte, screenWidth*screenHeight*4),
	}
	if err := clipboard.Init(); err != nil {
		logger.Logf(logger.Allow, "ui", "clipboard unavailable: %v", err)
	} else {
		ui.clipboard = true
	}
	return ui
}

// request asks the machine goroutine for a new snapshot unless one is on the
// way
func (ui *UI) request() {
	if ui.waiting > 0 {
		ui.waiting--
		return
	}
	ui.waiting = snapshotTimeout
	ui.m.PushFunction(func() {
		s := capture(ui.m)
		select {
		case ui.snapshots <- s:
		default:
		}
	})
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		ui.plane++
		if ui.plane > video.NumBitplanes {
			ui.plane = 0
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.m.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ui.m.SetPaused(true)
		ui.m.PushFunction(func() { ui.report(ui.m.Step(1)) })
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ui.m.SetPaused(true)
		ui.m.PushFunction(func() { ui.report(ui.m.RunFrame()) })
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyY) && ui.clipboard {
		clipboard.Write(clipboard.FmtText, []byte(ui.snap.state.String()))
	}

	select {
	case s := <-ui.snapshots:
		ui.snap = s
		ui.waiting = 0
	default:
	}
	ui.request()
	return nil
}

// report runs on the machine goroutine
func (ui *UI) report(halt string) {
	if halt != "" {
		logger.Log(logger.Allow, "ui", halt)
	}
}

func (ui *UI) Draw(screen *ebiten.Image) {
	st := ui.snap.state

	var info strings.Builder
	fmt.Fprintf(&info, " FPS: %0.0f\n", ebiten.ActualFPS())
	if ui.plane == 0 {
		fmt.Fprintf(&info, " PLANES: all\n")
	} else {
		fmt.Fprintf(&info, " PLANES: %d\n", ui.plane)
	}
	info.WriteString(indent(st.String()))

	debugOffsetX := float32(screenWidth * screenScale)
	vector.DrawFilledRect(screen, debugOffsetX, 0, debugWidth, debugHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, info.String(), int(debugOffsetX), 0)

	for i, c := range st.Video.Colors {
		x := debugOffsetX + 10 + float32(i%16)*17
		y := float32(debugHeight - 40 + (i/16)*17)
		vector.DrawFilledRect(screen, x, y, 15, 15, rgb(c), false)
	}

	if ui.snap.pixels != nil {
		render(ui.snap.pixels, st.Video.Colors, ui.plane, ui.pixels)
	}
	ui.screen.WritePixels(ui.pixels)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(screenScale, screenScale)
	screen.DrawImage(ui.screen, op)
}

func indent(s string) string {
	return " " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n ") + "\n"
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return screenWidth*screenScale + debugWidth, screenHeight * screenScale
}

func RunUI(ui *UI) error {
	ebiten.SetWindowTitle("amichip")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*screenScale+debugWidth, screenHeight*screenScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
