package topo

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// NodeTypeColor returns the default color for a node type.
func NodeTypeColor(nodeType string) color.RGBA {
	switch strings.ToLower(nodeType) {
	case TypeRouter:
		return color.RGBA{255, 140, 60, 255} // Orange - routing/core device
	case TypeSwitch:
		return color.RGBA{80, 200, 120, 255} // Green - switching/connecting
	case TypeServer:
		return color.RGBA{70, 140, 255, 255} // Blue - computing/services
	case TypeFirewall:
		return color.RGBA{220, 60, 60, 255} // Red - security/protection
	case TypeLoadBalancer:
		return color.RGBA{180, 100, 200, 255} // Purple - load distribution
	case TypeHost, "client":
		return color.RGBA{150, 150, 150, 255} // Gray - generic host
	default:
		return color.RGBA{120, 120, 120, 255} // Dark gray - unknown type
	}
}

// ConnectionTypeColor returns the default color for a connection type.
func ConnectionTypeColor(connType string) color.RGBA {
	switch strings.ToLower(connType) {
	case ConnFiber:
		return color.RGBA{100, 200, 255, 255} // Bright cyan for fiber
	case ConnEthernet:
		return color.RGBA{200, 200, 200, 255} // Light gray for ethernet
	default:
		return color.RGBA{180, 180, 180, 255} // Default gray
	}
}

// ParseColor parses a "#rrggbb" or "r,g,b" color string.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid color %q (want #rrggbb or r,g,b)", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// DisplayColor resolves a node's display color: the explicit override when
// it parses, otherwise the type default.
func (n *Node) DisplayColor() color.RGBA {
	if n.Color != "" {
		if c, err := ParseColor(n.Color); err == nil {
			return c
		}
	}
	return NodeTypeColor(n.Type)
}

// DisplayColor resolves a connection's base color the same way.
func (c *Connection) DisplayColor() color.RGBA {
	if c.Color != "" {
		if parsed, err := ParseColor(c.Color); err == nil {
			return parsed
		}
	}
	return ConnectionTypeColor(c.Type)
}
