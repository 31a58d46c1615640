package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const windSampleRate = beep.SampleRate(44100)

// per-frame wind kick that maps to full volume
const windLoud = 0.02

type windSound struct {
	volume *effects.Volume
}

// windNoise is low-passed white noise.
func windNoise() beep.Streamer {
	var l, r float64
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			l += 0.02 * (rand.Float64()*2 - 1 - l)
			r += 0.02 * (rand.Float64()*2 - 1 - r)
			samples[i][0] = l * 4
			samples[i][1] = r * 4
		}
		return len(samples), true
	})
}

func startWindSound() (*windSound, error) {
	if err := speaker.Init(windSampleRate, windSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}

	volume := &effects.Volume{
		Streamer: windNoise(),
		Base:     2,
		Volume:   -6,
		Silent:   true,
	}
	speaker.Play(volume)
	return &windSound{volume: volume}, nil
}

// follow sets the volume from the magnitude of this frame's wind kick.
func (w *windSound) follow(kick float64) {
	level := math.Min(kick/windLoud, 1)

	speaker.Lock()
	w.volume.Silent = level < 0.01
	w.volume.Volume = -6 + 6*level
	speaker.Unlock()
}
