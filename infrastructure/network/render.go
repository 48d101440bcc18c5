package network

import (
	"bufio"
	"io"
	"strconv"
)

// Seed is the JSON document the browser script animates from.
type Seed struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Nodes          []Node  `json:"nodes"`
	PacketInterval int     `json:"packetInterval"`
	MinPacketSpeed float64 `json:"minPacketSpeed"`
	PacketSpread   float64 `json:"packetSpread"`
}

func (s *Scene) Seed() Seed {
	nodes := make([]Node, len(s.Nodes))
	copy(nodes, s.Nodes)
	return Seed{
		Width:          s.Width,
		Height:         s.Height,
		Nodes:          nodes,
		PacketInterval: PacketInterval,
		MinPacketSpeed: MinPacketSpeed,
		PacketSpread:   PacketSpread,
	}
}

// WriteSVG draws the current frame: links, nodes, then packets.
func (s *Scene) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	bw.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + f(s.Width) + `" height="` + f(s.Height) +
		`" viewBox="0 0 ` + f(s.Width) + ` ` + f(s.Height) + `">`)
	bw.WriteString(`<g stroke="#6366f1" stroke-width="1">`)
	for _, n := range s.Nodes {
		for _, j := range n.Connections {
			other := s.Nodes[j]
			op := LinkOpacity(Distance(n, other))
			if op == 0 {
				continue
			}
			bw.WriteString(`<line x1="` + f(n.X) + `" y1="` + f(n.Y) + `" x2="` + f(other.X) + `" y2="` + f(other.Y) +
				`" stroke-opacity="` + strconv.FormatFloat(op, 'f', 3, 64) + `"/>`)
		}
	}
	bw.WriteString(`</g><g fill="#6366f1" fill-opacity="0.6">`)
	for _, n := range s.Nodes {
		bw.WriteString(`<circle cx="` + f(n.X) + `" cy="` + f(n.Y) + `" r="` + f(n.Radius) + `"/>`)
	}
	bw.WriteString(`</g><g fill="#22d3ee" fill-opacity="0.8">`)
	for _, p := range s.Packets {
		x, y := p.Position(s.Nodes)
		bw.WriteString(`<circle cx="` + f(x) + `" cy="` + f(y) + `" r="4"/>`)
	}
	bw.WriteString(`</g></svg>`)
	return bw.Flush()
}
