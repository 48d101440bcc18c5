package network

import (
	"math"
	"math/rand/v2"
)

const (
	NodeCount       = 50
	ConnectDistance = 150.0
	// PacketInterval is the number of frames the spawn timer must exceed.
	PacketInterval = 30
	MaxSpeed       = 0.5
	MinRadius      = 2.0
	RadiusSpread   = 3.0
	MinPacketSpeed = 0.01
	PacketSpread   = 0.02
)

// Node is a point of the decorative pipeline graph. Connections hold indexes
// into Scene.Nodes and are fixed once the scene is built.
type Node struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Radius      float64 `json:"radius"`
	Connections []int   `json:"connections"`
}

// Packet travels linearly from one node to a connected node.
type Packet struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Progress float64 `json:"progress"`
	Speed    float64 `json:"speed"`
}

// Position interpolates the packet between its endpoints.
func (p Packet) Position(nodes []Node) (float64, float64) {
	from, to := nodes[p.From], nodes[p.To]
	return from.X + (to.X-from.X)*p.Progress, from.Y + (to.Y-from.Y)*p.Progress
}

// Scene is one animation state. It is not safe for concurrent use.
type Scene struct {
	Width   float64
	Height  float64
	Nodes   []Node
	Packets []Packet
	Timer   int

	rng *rand.Rand
}

// NewScene places NodeCount nodes at random and connects every pair closer
// than ConnectDistance. The same seed yields the same scene.
func NewScene(width, height float64, seed uint64) *Scene {
	s := &Scene{
		Width:  width,
		Height: height,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.Nodes = make([]Node, NodeCount)
	for i := range s.Nodes {
		s.Nodes[i] = Node{
			X:      s.rng.Float64() * width,
			Y:      s.rng.Float64() * height,
			VX:     (s.rng.Float64() - 0.5) * MaxSpeed,
			VY:     (s.rng.Float64() - 0.5) * MaxSpeed,
			Radius: s.rng.Float64()*RadiusSpread + MinRadius,
		}
	}
	for i := range s.Nodes {
		conns := []int{}
		for j := range s.Nodes {
			if i == j {
				continue
			}
			if Distance(s.Nodes[i], s.Nodes[j]) < ConnectDistance {
				conns = append(conns, j)
			}
		}
		s.Nodes[i].Connections = conns
	}
	return s
}

// Distance is the euclidean distance between two nodes.
func Distance(a, b Node) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Step advances the scene by one frame.
func (s *Scene) Step() {
	for i := range s.Nodes {
		n := &s.Nodes[i]
		n.X += n.VX
		n.Y += n.VY
		if n.X < 0 || n.X > s.Width {
			n.VX = -n.VX
		}
		if n.Y < 0 || n.Y > s.Height {
			n.VY = -n.VY
		}
	}

	s.Timer++
	if s.Timer > PacketInterval && len(s.Nodes) > 0 {
		from := s.rng.IntN(len(s.Nodes))
		if conns := s.Nodes[from].Connections; len(conns) > 0 {
			s.Packets = append(s.Packets, Packet{
				From:  from,
				To:    conns[s.rng.IntN(len(conns))],
				Speed: MinPacketSpeed + s.rng.Float64()*PacketSpread,
			})
			s.Timer = 0
		}
	}

	kept := s.Packets[:0]
	for _, p := range s.Packets {
		p.Progress += p.Speed
		if p.Progress >= 1 {
			continue
		}
		kept = append(kept, p)
	}
	s.Packets = kept
}

// LinkOpacity fades long links; links at or beyond 150 are invisible.
func LinkOpacity(distance float64) float64 {
	return math.Max(0, 0.15-distance/1000)
}
