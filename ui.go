package main

import (
	"fmt"
	"log"
	"math"

	"github.com/faiface/pixel/pixelgl"
	"github.com/nathanKramer/clothsim/cloth"
)

const uiTuneRate = 1.02
const uiCameraSpeed = 0.03
const uiPokeRadius = 40.0 // screen pixels
const uiPokeForce = 2.0

type uiContext struct {
	configPath string
	config     cloth.Config
	paused     bool
	status     string
}

func NewUi(path string, cfg cloth.Config) *uiContext {
	return &uiContext{
		configPath: path,
		config:     cfg,
	}
}

// tune scales v up or down while a key is held.
func tune(win *pixelgl.Window, down, up pixelgl.Button, v float64) float64 {
	if win.Pressed(down) {
		v /= uiTuneRate
	}
	if win.Pressed(up) {
		if v == 0 {
			v = 1e-4
		}
		v *= uiTuneRate
	}
	return v
}

func updateUi(win *pixelgl.Window, ui *uiContext, sim *cloth.Cloth, d *DrawContext, data []cloth.Vertex) {
	if win.JustPressed(pixelgl.KeyEscape) {
		win.SetClosed(true)
	}
	if win.JustPressed(pixelgl.KeyP) {
		ui.paused = !ui.paused
	}

	p := &sim.Params
	p.Gravity = tune(win, pixelgl.KeyG, pixelgl.KeyH, p.Gravity)
	p.Rigidity = tune(win, pixelgl.KeyR, pixelgl.KeyT, p.Rigidity)
	p.Viscosity = tune(win, pixelgl.KeyV, pixelgl.KeyB, p.Viscosity)
	p.Gust = tune(win, pixelgl.KeyJ, pixelgl.KeyK, p.Gust)
	if win.Pressed(pixelgl.KeyN) {
		p.WindAmplitude = p.WindAmplitude.Div(uiTuneRate)
	}
	if win.Pressed(pixelgl.KeyM) {
		p.WindAmplitude = p.WindAmplitude.Mul(uiTuneRate)
	}
	if win.JustPressed(pixelgl.KeyI) {
		if p.Integrator == cloth.IntegratorExplicit {
			p.Integrator = cloth.IntegratorSymplectic
		} else {
			p.Integrator = cloth.IntegratorExplicit
		}
	}

	if win.Pressed(pixelgl.KeyLeft) {
		d.yaw -= uiCameraSpeed
	}
	if win.Pressed(pixelgl.KeyRight) {
		d.yaw += uiCameraSpeed
	}
	if win.Pressed(pixelgl.KeyUp) {
		d.pitch = math.Min(d.pitch+uiCameraSpeed, math.Pi/2)
	}
	if win.Pressed(pixelgl.KeyDown) {
		d.pitch = math.Max(d.pitch-uiCameraSpeed, -math.Pi/2)
	}

	if win.Pressed(pixelgl.MouseButtonLeft) {
		poke(win, sim, d, data)
	}

	if win.JustPressed(pixelgl.KeyS) {
		ui.config.Params = sim.Params
		if err := ui.config.Save(ui.configPath); err != nil {
			log.Printf("[config] %v", err)
			ui.status = "save failed"
		} else {
			log.Printf("[config] saved %s", ui.configPath)
			ui.status = fmt.Sprintf("saved %s", ui.configPath)
		}
	}
}

// poke pushes the cloth under the mouse against its surface normal.
func poke(win *pixelgl.Window, sim *cloth.Cloth, d *DrawContext, data []cloth.Vertex) {
	mouse := win.MousePosition()
	center := win.Bounds().Center()

	nearest, best := -1, uiPokeRadius*uiPokeRadius
	for k := range data {
		dist := d.project(data[k].Position, center).Sub(mouse)
		if l := dist.Dot(dist); l < best {
			nearest, best = k, l
		}
	}
	if nearest < 0 {
		return
	}

	origin := data[nearest].Position
	radius := uiPokeRadius / d.scale
	push := data[nearest].Normal.Neg()
	sim.ApplyDirectedForce(push.Mul(uiPokeForce*sim.Environment().Fe), origin, radius)
}
