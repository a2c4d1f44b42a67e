package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

// recorder collects canvas frames and writes them out as an animated GIF.
type recorder struct {
	path   string
	frames []*image.Paletted
}

func newRecorder(path string) *recorder {
	return &recorder{path: path, frames: make([]*image.Paletted, 0)}
}

// capture rasterises the canvas, one 4x4 block per Braille dot.
func (r *recorder) capture(c *Canvas) {
	charW, charH := 8, 16
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White, color.RGBA{0xff, 0xff, 0x00, 0xff}})

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - 0x2800)
			if pattern <= 0 {
				continue
			}
			ink := uint8(1)
			if c.Highlight[row][col] {
				ink = 2
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, ink)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *recorder) save() error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
