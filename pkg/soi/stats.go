package soi

import (
	"log/slog"

	"github.com/joshvictor1024/go-soi/pkg/types"
)

// Stats summarizes one render.
type Stats struct {
	Regions       int // regions processed
	Subdivisions  int // regions split into four children
	Scans         int // regions scanned because they were small
	EarlyScans    int // regions scanned because subdividing would gain too little
	ForcedScans   int // regions scanned because the frame budget was exhausted
	InteriorFills int // regions filled with BasinColor
	BasinFills    int // interior fills decided by the periodicity check
	MaxDepth      int
	// MinHeadroom is the smallest remaining depth budget seen at a region
	// entry.
	MinHeadroom    int
	JointSteps     int // joint iterations of all 13 orbits of a region
	PixelsIterated int // orbits iterated individually while scanning
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("regions", s.Regions),
		slog.Int("subdivisions", s.Subdivisions),
		slog.Int("scans", s.Scans),
		slog.Int("early_scans", s.EarlyScans),
		slog.Int("forced_scans", s.ForcedScans),
		slog.Int("interior_fills", s.InteriorFills),
		slog.Int("basin_fills", s.BasinFills),
		slog.Int("max_depth", s.MaxDepth),
		slog.Int("min_headroom", s.MinHeadroom),
		slog.Int("joint_steps", s.JointSteps),
		slog.Int("pixels_iterated", s.PixelsIterated),
	)
}

// Outcome is how a region was resolved.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeScan
	OutcomeEarlyScan
	OutcomeForcedScan
	OutcomeInteriorFill
	OutcomeSubdivide
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeScan:
		return "scan"
	case OutcomeEarlyScan:
		return "early-scan"
	case OutcomeForcedScan:
		return "forced-scan"
	case OutcomeInteriorFill:
		return "interior-fill"
	case OutcomeSubdivide:
		return "subdivide"
	case OutcomeCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Region is one entry of a render trace.
type Region struct {
	Rect  types.Recti
	Depth int
	// Parent is the index of the subdivided region this one came from,
	// or -1 for the whole frame.
	Parent  int
	Outcome Outcome
	// Iteration is the shared iteration count when the region was
	// resolved.
	Iteration int
}
