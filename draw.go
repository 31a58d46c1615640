package main

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/golang/freetype/truetype"
	"github.com/nathanKramer/clothsim/cloth"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// perspective depth in screen units
const viewDepth = 2000.0

type DrawContext struct {
	imd     *imdraw.IMDraw
	indices []uint32
	order   []tri

	// camera
	yaw   float64
	pitch float64
	scale float64
	light cloth.Vector3

	hudFont *text.Atlas
	hudTxt  *text.Text
}

type tri struct {
	k     int
	depth float64
}

func NewDrawContext(cfg cloth.Config) *DrawContext {
	d := new(DrawContext)
	d.imd = imdraw.New(nil)
	d.indices = cloth.Indices(cfg.Width, cfg.Height)
	d.order = make([]tri, len(d.indices)/3)

	// fit the cloth to roughly half the window
	extent := math.Max(float64(cfg.Width), float64(cfg.Height)) * cfg.Step
	d.scale = 0.5 * math.Min(config.screenWidth, config.screenHeight) / extent
	d.yaw = 0.4
	d.pitch = 0.2
	d.light, _ = cloth.V3(1, 1, 1).Unit()

	var hudFace font.Face = basicfont.Face7x13
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("[draw] %v, falling back to basic font", err)
	} else {
		hudFace = truetype.NewFace(ttf, &truetype.Options{
			Size: 14.0,
			DPI:  96,
		})
	}
	d.hudFont = text.NewAtlas(hudFace, text.ASCII)
	d.hudTxt = text.New(pixel.ZV, d.hudFont)
	d.hudTxt.LineHeight = d.hudFont.LineHeight() * 1.3

	return d
}

// view rotates a world point into camera space.
func (d *DrawContext) view(p cloth.Vector3) cloth.Vector3 {
	sy, cy := math.Sincos(d.yaw)
	sp, cp := math.Sincos(d.pitch)
	x := p.X*cy + p.Z*sy
	z := -p.X*sy + p.Z*cy
	y := p.Y*cp - z*sp
	z = p.Y*sp + z*cp
	return cloth.V3(x, y, z)
}

func (d *DrawContext) project(p cloth.Vector3, center pixel.Vec) pixel.Vec {
	return d.view(p).ToVec2(d.scale, viewDepth).Add(center)
}

// DrawCloth paints the triangles back to front, lit by each triangle's
// averaged vertex normal.
func (d *DrawContext) DrawCloth(win *pixelgl.Window, data []cloth.Vertex, w, h int) {
	d.imd.Clear()
	center := win.Bounds().Center()
	base := pixel.ToRGBA(colornames.Cornflowerblue)
	back := pixel.ToRGBA(colornames.Indianred)

	for k := range d.order {
		i := d.indices[3*k : 3*k+3]
		depth := 0.0
		for _, v := range i {
			depth += d.view(data[v].Position).Z
		}
		d.order[k] = tri{k, depth}
	}
	sort.Slice(d.order, func(a, b int) bool {
		return d.order[a].depth < d.order[b].depth
	})

	for _, t := range d.order {
		i := d.indices[3*t.k : 3*t.k+3]
		n := data[i[0]].Normal.Add(data[i[1]].Normal).Add(data[i[2]].Normal)
		n, _ = n.Unit()

		lit := d.view(n).Dot(d.light)
		c := base
		if d.view(n).Z < 0 {
			c = back
			lit = -lit
		}
		lit = 0.25 + 0.75*math.Max(lit, 0)
		d.imd.Color = pixel.RGB(c.R*lit, c.G*lit, c.B*lit)

		d.imd.Push(
			d.project(data[i[0]].Position, center),
			d.project(data[i[1]].Position, center),
			d.project(data[i[2]].Position, center),
		)
		d.imd.Polygon(0)
	}

	// anchored column
	d.imd.Color = colornames.Gold
	for j := 0; j < h; j++ {
		d.imd.Push(d.project(data[j].Position, center))
	}
	d.imd.Circle(2, 0)

	d.imd.Draw(win)
}

func (d *DrawContext) DrawHud(win *pixelgl.Window, ui *uiContext, sim *cloth.Cloth, dt float64) {
	p := sim.Params
	d.hudTxt.Clear()
	d.hudTxt.Orig = pixel.V(16, win.Bounds().H()-24)
	d.hudTxt.Dot = d.hudTxt.Orig
	d.hudTxt.Color = colornames.Lightgray

	fps := 0.0
	if dt > 0 {
		fps = 1 / dt
	}
	lines := []string{
		fmt.Sprintf("%.1f FPS  %d particles  %d links", fps, len(sim.Particles), len(sim.Links)),
		fmt.Sprintf("[G/H] gravity    %.4f", p.Gravity),
		fmt.Sprintf("[R/T] rigidity   %.4f", p.Rigidity),
		fmt.Sprintf("[V/B] viscosity  %.4f", p.Viscosity),
		fmt.Sprintf("[N/M] wind       %.4f %.4f %.4f", p.WindAmplitude.X, p.WindAmplitude.Y, p.WindAmplitude.Z),
		fmt.Sprintf("[J/K] gust       %.2f", p.Gust),
		fmt.Sprintf("[I]   integrator %s", p.Integrator),
		"[arrows] camera  [mouse] poke  [P] pause  [S] save  [Esc] quit",
	}
	if ui.status != "" {
		lines = append(lines, ui.status)
	}
	for _, line := range lines {
		fmt.Fprintln(d.hudTxt, line)
	}
	d.hudTxt.Draw(win, pixel.IM)
}
