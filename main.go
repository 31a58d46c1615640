package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/nathanKramer/clothsim/cloth"
	"golang.org/x/image/colornames"
)

// Config
type configuration struct {
	screenWidth  float64
	screenHeight float64
	fullscreen   bool
}

var config = configuration{
	1024.0,
	768.0,
	false,
}

const windowTitle = "clothsim"

// longest frame handed to the simulation; a stalled window would
// otherwise fling the cloth
const maxFrame = 0.1

var (
	configPath = flag.String("config", "cloth.yml", "YAML preset with grid size and tuning")
	audio      = flag.Bool("audio", false, "play wind noise that follows the wind force")
	fullscreen = flag.Bool("fullscreen", false, "open on the primary monitor")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func PrintMemUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Alloc = %v MB", bToMb(m.Alloc))
	fmt.Printf("\tSys = %v MB", bToMb(m.Sys))
	fmt.Printf("\tNumGC = %v\n", m.NumGC)
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

func init() {
	rand.Seed(time.Now().Unix())
}

func run() {
	cfg, err := cloth.LoadConfig(*configPath)
	if err != nil {
		log.Printf("[config] %v, using defaults", err)
	}
	log.Printf("[config] %dx%d grid, step %.2f, mass %.2f", cfg.Width, cfg.Height, cfg.Step, cfg.Mass)

	sim, err := cloth.New(cfg)
	if err != nil {
		log.Fatalf("[boot] %v", err)
	}
	frames := cloth.NewFrameBuffer(sim.NewBuffer())
	if err := sim.CheckBuffer(frames.Back()); err != nil {
		log.Fatalf("[boot] %v", err)
	}

	winCfg := pixelgl.WindowConfig{
		Title:  windowTitle,
		Bounds: pixel.R(0, 0, config.screenWidth, config.screenHeight),
		VSync:  true,
	}
	if config.fullscreen {
		winCfg.Monitor = pixelgl.PrimaryMonitor()
	}

	win, err := pixelgl.NewWindow(winCfg)
	if err != nil {
		log.Fatalf("[boot] %v", err)
	}

	draw := NewDrawContext(cfg)
	ui := NewUi(*configPath, cfg)

	var wind *windSound
	if *audio {
		wind, err = startWindSound()
		if err != nil {
			log.Printf("[sound] %v, continuing without audio", err)
		}
	}

	start := time.Now()
	lastFrame := start
	lastMemCheck := start

	for !win.Closed() {
		now := time.Now()
		dt := math.Min(now.Sub(lastFrame).Seconds(), maxFrame)
		lastFrame = now

		if now.Sub(lastMemCheck).Seconds() > 5.0 {
			PrintMemUsage()
			lastMemCheck = now
		}

		updateUi(win, ui, sim, draw, frames.Front())

		if !ui.paused {
			sim.Step(dt, now.Sub(start).Seconds(), frames.Back())
			frames.Swap()
		}

		if wind != nil {
			wind.follow(sim.Environment().Wind.Mul(dt).Len())
		}

		win.Clear(colornames.Black)
		draw.DrawCloth(win, frames.Front(), sim.Width, sim.Height)
		draw.DrawHud(win, ui, sim, dt)
		win.Update()
	}
}

func main() {
	flag.Parse()
	config.fullscreen = *fullscreen

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	pixelgl.Run(run)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
