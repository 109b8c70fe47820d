package topo

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"hex", "#ff8c3c", color.RGBA{255, 140, 60, 255}, false},
		{"hex black", "#000000", color.RGBA{0, 0, 0, 255}, false},
		{"triple", "70,140,255", color.RGBA{70, 140, 255, 255}, false},
		{"triple spaced", " 10, 20, 30 ", color.RGBA{10, 20, 30, 255}, false},
		{"empty", "", color.RGBA{}, true},
		{"short hex", "#fff", color.RGBA{}, true},
		{"garbage", "not-a-color", color.RGBA{}, true},
		{"out of range", "300,0,0", color.RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDisplayColorFallback(t *testing.T) {
	// Malformed override falls back to the type default, never fails.
	n := Node{Type: TypeRouter, Color: "definitely-broken"}
	if got := n.DisplayColor(); got != NodeTypeColor(TypeRouter) {
		t.Errorf("malformed color should fall back to type default, got %v", got)
	}

	// Valid override wins.
	n.Color = "#010203"
	if got := n.DisplayColor(); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("override color = %v, want (1,2,3)", got)
	}

	// Unknown type still yields a color.
	n = Node{Type: "quantum_repeater"}
	if got := n.DisplayColor(); got.A != 255 {
		t.Errorf("unknown type should yield an opaque default, got %v", got)
	}
}

func TestParseFlowDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    FlowDirection
		wantErr bool
	}{
		{"", FlowForward, false},
		{"forward", FlowForward, false},
		{"reverse", FlowReverse, false},
		{"bidirectional", FlowBidirectional, false},
		{"sideways", FlowForward, true},
	}
	for _, tc := range tests {
		got, err := ParseFlowDirection(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFlowDirection(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseFlowDirection(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSettingsSource(t *testing.T) {
	s := DefaultVisualSettings()
	if !s.ShowGrid || s.EnvironmentLighting {
		t.Fatalf("unexpected defaults: %+v", s)
	}

	var calls int
	src := SettingsFunc(func() VisualSettings {
		calls++
		return s
	})
	_ = src.Current()
	_ = src.Current()
	if calls != 2 {
		t.Errorf("SettingsFunc should be invoked per call, got %d", calls)
	}

	static := StaticSettings(s)
	if static.Current().AmbientIntensity != s.AmbientIntensity {
		t.Errorf("StaticSettings should round-trip values")
	}
}

func TestSnapshotNodeByID(t *testing.T) {
	snap := Snapshot{Nodes: []Node{{ID: 1, Name: "r1"}, {ID: 7, Name: "sw1"}}}
	if n := snap.NodeByID(7); n == nil || n.Name != "sw1" {
		t.Errorf("NodeByID(7) = %v", n)
	}
	if n := snap.NodeByID(99); n != nil {
		t.Errorf("NodeByID(99) should be nil, got %v", n)
	}
}
