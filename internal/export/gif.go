package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/physics"
)

// Recorder captures every Every-th frame of a Raster as a GIF frame. It is
// a sim.Observer.
type Recorder struct {
	raster  *Raster
	palette color.Palette
	Width   int
	Every   int
	// Delay per frame in 100ths of a second.
	Delay  int
	frames []*image.Paletted
}

// NewRecorder builds a palette ramp from the background to fg so the
// particle colour survives quantisation.
func NewRecorder(r *Raster, fg dynamo.RGBA) *Recorder {
	return &Recorder{
		raster:  r,
		palette: ramp(r.bg, fg.NRGBA(), 256),
		Every:   1,
		Delay:   2,
	}
}

func (rec *Recorder) OnFrame(f *physics.Field, frame int) {
	if rec.Every > 1 && frame%rec.Every != 0 {
		return
	}
	rec.Capture()
}

// Capture appends the raster's current contents.
func (rec *Recorder) Capture() {
	src := rec.raster.Scaled(rec.Width)
	pal := image.NewPaletted(src.Bounds(), rec.palette)
	draw.Draw(pal, pal.Bounds(), src, src.Bounds().Min, draw.Src)
	rec.frames = append(rec.frames, pal)
}

func (rec *Recorder) Frames() int { return len(rec.frames) }

func (rec *Recorder) Encode(w io.Writer) error {
	if len(rec.frames) == 0 {
		return fmt.Errorf("encode gif: no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range rec.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, rec.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (rec *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ramp(from, to color.NRGBA, n int) color.Palette {
	p := make(color.Palette, n)
	lerp := func(a, b uint8, t float64) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	for i := range p {
		t := float64(i) / float64(n-1)
		p[i] = color.RGBA{R: lerp(from.R, to.R, t), G: lerp(from.G, to.G, t), B: lerp(from.B, to.B, t), A: 255}
	}
	return p
}
