package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/slopewalk/internal/domain/entity"
	"github.com/younwookim/slopewalk/internal/domain/geom"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
	pending   FrameInput
}

// NewRecorder creates a recorder for a session on stage starting at spawn
func NewRecorder(stage string, spawn geom.Vec2, framerate int) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Stage:     stage,
			Spawn:     spawn,
			Framerate: framerate,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// SetForce records the force for the current frame; the last call wins
func (r *Recorder) SetForce(f geom.Vec2) {
	r.pending.FX, r.pending.FY = f.X, f.Y
}

// SetVelocity records a world velocity override for the current frame
func (r *Recorder) SetVelocity(v geom.Vec2) {
	r.pending.V = &v
}

// SetLayer records a layer change for the current frame
func (r *Recorder) SetLayer(l entity.Layer) {
	layer := int(l)
	r.pending.Layer = &layer
}

// EndFrame commits the current frame
func (r *Recorder) EndFrame() {
	if !r.recording {
		r.pending = FrameInput{}
		return
	}

	r.pending.F = r.frame
	r.data.Frames = append(r.data.Frames, r.pending)
	r.pending = FrameInput{}
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return errors.New("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return r.Encode(file)
}

// Encode writes the replay data as indented JSON
func (r *Recorder) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
