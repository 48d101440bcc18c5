package network

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSceneIsDeterministic(t *testing.T) {
	a := NewScene(800, 600, 42)
	b := NewScene(800, 600, 42)
	if len(a.Nodes) != NodeCount {
		t.Fatalf("expected %d nodes, got %d", NodeCount, len(a.Nodes))
	}
	for i := range a.Nodes {
		if a.Nodes[i].X != b.Nodes[i].X || a.Nodes[i].Y != b.Nodes[i].Y {
			t.Fatalf("node %d differs between equal seeds", i)
		}
	}
}

func TestNodeBounds(t *testing.T) {
	s := NewScene(1024, 768, 7)
	for i, n := range s.Nodes {
		if n.X < 0 || n.X > 1024 || n.Y < 0 || n.Y > 768 {
			t.Fatalf("node %d outside viewport: %+v", i, n)
		}
		if n.VX < -0.25 || n.VX > 0.25 || n.VY < -0.25 || n.VY > 0.25 {
			t.Fatalf("node %d velocity out of range: %+v", i, n)
		}
		if n.Radius < 2 || n.Radius >= 5 {
			t.Fatalf("node %d radius out of range: %v", i, n.Radius)
		}
	}
}

func TestConnectionsAreSymmetricAndClose(t *testing.T) {
	s := NewScene(600, 400, 3)
	for i, n := range s.Nodes {
		for _, j := range n.Connections {
			if j == i {
				t.Fatalf("node %d connected to itself", i)
			}
			if Distance(n, s.Nodes[j]) >= ConnectDistance {
				t.Fatalf("nodes %d and %d too far apart to connect", i, j)
			}
			found := false
			for _, back := range s.Nodes[j].Connections {
				if back == i {
					found = true
				}
			}
			if !found {
				t.Fatalf("connection %d->%d is not mirrored", i, j)
			}
		}
	}
}

func TestConnectionsFixedAfterCreation(t *testing.T) {
	s := NewScene(600, 400, 11)
	before := make([]int, len(s.Nodes))
	for i, n := range s.Nodes {
		before[i] = len(n.Connections)
	}
	for range 500 {
		s.Step()
	}
	for i, n := range s.Nodes {
		if len(n.Connections) != before[i] {
			t.Fatalf("node %d connections changed", i)
		}
	}
}

func TestStepBouncesOffEdges(t *testing.T) {
	s := &Scene{Width: 100, Height: 100, Nodes: []Node{
		{X: 99.9, Y: 50, VX: 0.2, VY: 0},
		{X: 50, Y: 0.1, VX: 0, VY: -0.2},
	}}
	s.Step()
	if s.Nodes[0].VX >= 0 {
		t.Fatalf("expected x velocity to flip, got %v", s.Nodes[0].VX)
	}
	if s.Nodes[1].VY <= 0 {
		t.Fatalf("expected y velocity to flip, got %v", s.Nodes[1].VY)
	}
}

func TestPacketSpawnCadence(t *testing.T) {
	s := &Scene{Width: 100, Height: 100, Nodes: []Node{
		{X: 10, Y: 10, Connections: []int{1}},
		{X: 20, Y: 20, Connections: []int{0}},
	}}
	s.rng = NewScene(1, 1, 1).rng
	for range PacketInterval {
		s.Step()
	}
	if len(s.Packets) != 0 {
		t.Fatalf("no packet expected before the timer passes %d", PacketInterval)
	}
	s.Step()
	if len(s.Packets) != 1 {
		t.Fatalf("expected one packet, got %d", len(s.Packets))
	}
	if s.Timer != 0 {
		t.Fatalf("expected timer reset, got %d", s.Timer)
	}
	p := s.Packets[0]
	if p.Speed < MinPacketSpeed || p.Speed >= MinPacketSpeed+PacketSpread {
		t.Fatalf("packet speed out of range: %v", p.Speed)
	}
}

func TestTimerKeepsRunningWithoutConnections(t *testing.T) {
	s := &Scene{Width: 100, Height: 100, Nodes: []Node{{X: 10, Y: 10}}}
	s.rng = NewScene(1, 1, 1).rng
	for range PacketInterval + 5 {
		s.Step()
	}
	if len(s.Packets) != 0 {
		t.Fatalf("isolated nodes cannot spawn packets")
	}
	if s.Timer != PacketInterval+5 {
		t.Fatalf("timer must only reset on spawn, got %d", s.Timer)
	}
}

func TestPacketsDiscardedAtCompletion(t *testing.T) {
	s := &Scene{Width: 100, Height: 100,
		Nodes:   []Node{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Packets: []Packet{{From: 0, To: 1, Progress: 0.99, Speed: 0.02}, {From: 1, To: 0, Progress: 0.1, Speed: 0.01}},
	}
	s.Step()
	if len(s.Packets) != 1 || s.Packets[0].From != 1 {
		t.Fatalf("unexpected packets: %+v", s.Packets)
	}
}

func TestLinkOpacity(t *testing.T) {
	if LinkOpacity(0) != 0.15 {
		t.Fatalf("unexpected opacity at zero distance")
	}
	if LinkOpacity(200) != 0 {
		t.Fatalf("expected zero opacity for long links")
	}
}

func TestSeedJSONAndSVG(t *testing.T) {
	s := NewScene(320, 240, 5)
	raw, err := json.Marshal(s.Seed())
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if !strings.Contains(string(raw), `"packetInterval":30`) {
		t.Fatalf("seed missing cadence: %s", raw)
	}

	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("unexpected svg document: %.80s", out)
	}
	if got := strings.Count(out, `r="`); got < NodeCount {
		t.Fatalf("expected at least %d circles, got %d", NodeCount, got)
	}
}
