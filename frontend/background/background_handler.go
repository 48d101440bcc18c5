package background

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"portfolio/infrastructure/network"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 800
	minSide       = 100
	maxSide       = 4096

	// svgWarmup is enough frames for the first packet to be in flight.
	svgWarmup = network.PacketInterval + 15
)

// SeedFunc returns the seed for a new scene.
type SeedFunc func() uint64

func RandomSeed() uint64 { return rand.Uint64() }

func dimension(raw string, def int) float64 {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return float64(def)
	}
	return float64(min(max(n, minSide), maxSide))
}

func scene(r *http.Request, seed SeedFunc) *network.Scene {
	q := r.URL.Query()
	if seed == nil {
		seed = RandomSeed
	}
	return network.NewScene(dimension(q.Get("w"), DefaultWidth), dimension(q.Get("h"), DefaultHeight), seed())
}

// SeedQueryHandler serves the initial scene the canvas script animates.
func SeedQueryHandler(seed SeedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := scene(r, seed)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(s.Seed()); err != nil {
			slog.Error("encode background seed failed", slog.Any("err", err))
		}
	}
}

// SVGQueryHandler serves one still frame for clients without scripts.
func SVGQueryHandler(seed SeedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := scene(r, seed)
		for i := 0; i < svgWarmup; i++ {
			s.Step()
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=300")
		if err := s.WriteSVG(w); err != nil {
			slog.Error("write background svg failed", slog.Any("err", err))
		}
	}
}
