package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/slopewalk/internal/application/system"
	"github.com/younwookim/slopewalk/internal/domain/entity"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay data from r
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	for i, fi := range data.Frames {
		if fi.F != i {
			return nil, fmt.Errorf("failed to decode replay: frame %d has number %d", i, fi.F)
		}
	}

	return &data, nil
}

// Next returns the intents for the current frame and advances
func (r *Replayer) Next() ([]system.Intent, bool) {
	if r.frame >= len(r.data.Frames) {
		return nil, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return Intents(fi), true
}

// Intents converts a recorded frame into intents.
// Velocity and layer overrides apply before the force, as they were recorded.
func Intents(fi FrameInput) []system.Intent {
	var intents []system.Intent
	if fi.V != nil {
		intents = append(intents, system.VelocityIntent{Velocity: *fi.V})
	}
	if fi.Layer != nil {
		intents = append(intents, system.LayerIntent{Layer: entity.Layer(*fi.Layer)})
	}
	return append(intents, system.ForceIntent{Force: fi.Force()})
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Done reports whether every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// Data returns the replay being played
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing: walk right, then idle
func CreateTestReplayData(frames, walkFrames int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Stage:     "test",
		Framerate: 60,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
		if i < walkFrames {
			data.Frames[i].FX = 1
		}
	}

	return data
}
