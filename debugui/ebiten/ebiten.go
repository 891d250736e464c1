// Package ebiten hosts the debug panel on top of an Ebiten game.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay wraps the Ebiten Dear ImGui backend. Call BeginFrame and EndFrame
// around the ImGui calls made during Update, then Draw after the game has
// drawn its own content.
type Overlay struct {
	*ebitenbackend.EbitenBackend
}

// NewOverlay creates the ImGui context and the Ebiten window it renders into.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{EbitenBackend: backend}
}

// Layout forwards the outside size to ImGui and keeps the window size.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	o.EbitenBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Draw renders the ImGui draw data on top of screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.EbitenBackend.Draw(screen)
}
