// Package topo defines the topology records the engine consumes: nodes,
// connections, traffic metrics, and visual settings. The engine is a pure
// in-memory consumer of these records; persistence and CRUD live elsewhere.
package topo

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Common node types.
const (
	TypeHost         = "host"
	TypeRouter       = "router"
	TypeSwitch       = "switch"
	TypeFirewall     = "firewall"
	TypeLoadBalancer = "load_balancer"
	TypeServer       = "server"
	TypeCloud        = "cloud"
)

// Common connection types.
const (
	ConnEthernet = "ethernet"
	ConnFiber    = "fiber"
	ConnWireless = "wireless"
	ConnVPN      = "vpn"
	ConnWAN      = "wan"
)

// Node is one network device in a topology snapshot.
//
// Stored coordinates follow the datastore convention: X is left-right, Y is
// up, Z is depth. The scene maps these onto the world's Z-up convention.
// Rotations are stored in degrees.
type Node struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	IPAddress string `yaml:"ip_address,omitempty"`

	PositionX float64 `yaml:"position_x"`
	PositionY float64 `yaml:"position_y"`
	PositionZ float64 `yaml:"position_z"`
	RotationX float64 `yaml:"rotation_x"`
	RotationY float64 `yaml:"rotation_y"`
	RotationZ float64 `yaml:"rotation_z"`
	Scale     float64 `yaml:"scale,omitempty"`

	// Color optionally overrides the type-default color ("#rrggbb" or
	// "r,g,b"). Malformed values fall back to the type default.
	Color string `yaml:"color,omitempty"`

	// Hidden nodes are excluded from rendering, picking, and bounding-box
	// computation. The zero value keeps nodes visible.
	Hidden bool `yaml:"hidden,omitempty"`

	// Model optionally names the asset file; empty means the type-default
	// model.
	Model string `yaml:"model,omitempty"`
}

// FlowDirection describes which way traffic flows along a connection.
type FlowDirection int

const (
	FlowForward FlowDirection = iota
	FlowReverse
	FlowBidirectional
)

// String returns the YAML/wire name of the direction.
func (d FlowDirection) String() string {
	switch d {
	case FlowReverse:
		return "reverse"
	case FlowBidirectional:
		return "bidirectional"
	default:
		return "forward"
	}
}

// ParseFlowDirection parses a direction name. Empty input means forward.
func ParseFlowDirection(s string) (FlowDirection, error) {
	switch s {
	case "", "forward":
		return FlowForward, nil
	case "reverse":
		return FlowReverse, nil
	case "bidirectional":
		return FlowBidirectional, nil
	default:
		return FlowForward, fmt.Errorf("unknown flow direction %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for direction names.
func (d *FlowDirection) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFlowDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d FlowDirection) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Connection is a link between two nodes.
type Connection struct {
	ID       int64  `yaml:"id"`
	SourceID int64  `yaml:"source_id"`
	TargetID int64  `yaml:"target_id"`
	Type     string `yaml:"type,omitempty"`

	CarriesTraffic bool          `yaml:"carries_traffic,omitempty"`
	Direction      FlowDirection `yaml:"direction,omitempty"`

	// Color optionally overrides the type-default color.
	Color string `yaml:"color,omitempty"`
}

// Metrics is a snapshot of traffic measurements for one connection.
type Metrics struct {
	UtilizationPercent float64 `yaml:"utilization_percent"`
	ThroughputMbps     float64 `yaml:"throughput_mbps"`
	LatencyMs          float64 `yaml:"latency_ms"`
	PacketLossPercent  float64 `yaml:"packet_loss_percent"`
}

// MetricsMap holds traffic metrics keyed by connection id.
type MetricsMap map[int64]Metrics

// Snapshot is one full topology as loaded from the datastore.
type Snapshot struct {
	Name        string       `yaml:"name,omitempty"`
	Nodes       []Node       `yaml:"nodes"`
	Connections []Connection `yaml:"connections"`
}

// NodeByID returns the node with the given id, or nil.
func (s *Snapshot) NodeByID(id int64) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}
