package replay

import "github.com/younwookim/slopewalk/internal/domain/geom"

// Version is written into every replay file
const Version = "2.0"

// FrameInput records the writes a controller made before one tick
type FrameInput struct {
	F     int        `json:"f"`               // Frame number
	FX    float64    `json:"fx,omitempty"`    // Force X
	FY    float64    `json:"fy,omitempty"`    // Force Y
	V     *geom.Vec2 `json:"v,omitempty"`     // World velocity override
	Layer *int       `json:"layer,omitempty"` // Layer change
}

// Force returns the recorded force
func (fi FrameInput) Force() geom.Vec2 {
	return geom.V(fi.FX, fi.FY)
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Spawn     geom.Vec2    `json:"spawn"`
	Framerate int          `json:"framerate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
