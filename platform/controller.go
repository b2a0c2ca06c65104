package platform

import "github.com/hajimehoshi/ebiten/v2"

// player1Keys and player2Keys map the 8 NES buttons (bit0=A .. bit7=Right, per
// bus.Controller.SetState) to ebiten keys. Grounded on
// bdwalton-gintendo/console/controller.go's keys table, generalized
// here to a second set for player 2.
var player1Keys = [8]ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,    // Up
	ebiten.KeyDown,  // Down
	ebiten.KeyLeft,  // Left
	ebiten.KeyRight, // Right
}

var player2Keys = [8]ebiten.Key{
	ebiten.KeyJ, // A
	ebiten.KeyK, // B
	ebiten.Key6, // Select
	ebiten.Key7, // Start
	ebiten.KeyW, // Up
	ebiten.KeyS, // Down
	ebiten.KeyA, // Left
	ebiten.KeyD, // Right
}

func pollKeys(keys [8]ebiten.Key) uint8 {
	var mask uint8
	for i, k := range keys {
		if ebiten.IsKeyPressed(k) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
