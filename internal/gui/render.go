package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/clothsim/internal/gui/scene"
)

func (a *App) drawScene(screen *ebiten.Image) {
	s := float32(a.scale)
	for _, shape := range a.shown.Shapes {
		x1, y1 := float32(shape.X1)*s, float32(shape.Y1)*s
		switch shape.Kind {
		case scene.Segment:
			vector.StrokeLine(screen, x1, y1, float32(shape.X2)*s, float32(shape.Y2)*s, 1, ColCloth, true)
		case scene.Node:
			vector.DrawFilledCircle(screen, x1, y1, 1.5, ColCloth, true)
		case scene.Anchor:
			vector.DrawFilledCircle(screen, x1, y1, 3, ColAnchor, true)
		case scene.Circle:
			col := ColPointer
			if a.err != nil {
				col = ColFailed
			}
			vector.StrokeCircle(screen, x1, y1, float32(shape.R)*s, 1, col, true)
		}
	}
}
