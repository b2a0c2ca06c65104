// Package platform is the ebiten host glue: display, input and audio
// sinks wired to a nes.Console. Grounded on
// bdwalton-gintendo/console/bus.go's Layout/Draw/Update/Run and
// console/controller.go's key-polling controller, generalized to two
// players and extended with ebiten/audio streaming (the teacher never
// wired an APU, so audio output has no teacher precedent beyond the
// ebiten module it already depends on).
package platform

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/bdwalton/gones2/nes"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// Game implements ebiten.Game, driving the console one frame per
// Update call, the same division of labor as console.Bus.Update's
// comment describes, except here Update itself does the stepping
// instead of a background goroutine — RunFrame already returns once
// the PPU completes a frame, so there's no need for a second
// goroutine racing ebiten's draw loop.
type Game struct {
	console *nes.Console
	savPath string

	audioCtx    *audio.Context
	audioPlayer *audio.Player
	stream      *sampleStream

	noAudio bool
}

// New constructs a Game for console, optionally persisting battery RAM
// to savPath on Close and streaming audio through sampleRate unless
// noAudio is set (headless/test use).
func New(console *nes.Console, savPath string, sampleRate int, noAudio bool) *Game {
	g := &Game{console: console, savPath: savPath, noAudio: noAudio}
	g.loadBatteryRAM()

	ebiten.SetWindowSize(screenWidth*3, screenHeight*3)
	ebiten.SetWindowTitle("gones2")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if !noAudio {
		console.APU.SetSampleRate(sampleRate)
		g.audioCtx = audio.NewContext(sampleRate)
		g.stream = &sampleStream{apu: console.APU, sampleRate: sampleRate}
		player, err := g.audioCtx.NewPlayer(g.stream)
		if err != nil {
			log.Printf("gones2: audio disabled, NewPlayer failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.Play()
		}
	}

	return g
}

// Layout returns the NES's fixed resolution, forcing ebiten to scale
// the window instead of the framebuffer, per console.Bus.Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Update polls both controllers and advances the emulator one whole
// frame, matching spec.md §4.1's run_frame contract.
func (g *Game) Update() error {
	g.console.Bus.Controller1.SetState(pollKeys(player1Keys))
	g.console.Bus.Controller2.SetState(pollKeys(player2Keys))

	g.console.RunFrame()

	if g.console.StepLimitHit {
		log.Printf("gones2: frame exceeded step limit, returning partial framebuffer")
	}

	return nil
}

// Draw blits the engine's 0xRRGGBBAA framebuffer onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	fb := g.console.PPU.Framebuffer()
	pix := make([]byte, 4*len(fb))
	for i, p := range fb {
		pix[4*i] = byte(p >> 24)   // R
		pix[4*i+1] = byte(p >> 16) // G
		pix[4*i+2] = byte(p >> 8)  // B
		pix[4*i+3] = byte(p)       // A
	}
	screen.WritePixels(pix)

	if g.console.Jammed {
		ebiten.SetWindowTitle(fmt.Sprintf("gones2 [JAMMED] %s", g.console))
	}
}

// Close persists battery RAM. Callers should defer this before
// ebiten.RunGame returns.
func (g *Game) Close() {
	g.saveBatteryRAM()
}

func (g *Game) loadBatteryRAM() {
	if g.savPath == "" {
		return
	}
	data, err := os.ReadFile(g.savPath)
	if err != nil {
		return // no save file yet; not an error worth logging
	}
	copy(g.console.Bus.BatteryRAM(), data)
}

func (g *Game) saveBatteryRAM() {
	if g.savPath == "" {
		return
	}
	sram := g.console.Bus.BatteryRAM()
	if len(sram) == 0 {
		return
	}
	if err := os.WriteFile(g.savPath, sram, 0o644); err != nil {
		log.Printf("gones2: failed to persist battery RAM to %s: %v", g.savPath, err)
	}
}
