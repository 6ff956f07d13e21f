package controller

import "go.uber.org/zap/zapcore"

// Snapshot is a read-only copy of the controller state after a frame.
type Snapshot struct {
	Frame     uint64     `json:"frame"`
	Angle     float64    `json:"angle"`
	Yaw       float64    `json:"yaw"`
	Pitch     float64    `json:"pitch"`
	Sun       [3]float64 `json:"sun"`
	Intensity float64    `json:"intensity"`
	Hue       float64    `json:"hue"`
	Color     string     `json:"color"`
	Dragging  bool       `json:"dragging"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
}

// MarshalLogObject lets a Snapshot be logged with zap.Object.
func (s Snapshot) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("frame", s.Frame)
	enc.AddFloat64("angle", s.Angle)
	enc.AddFloat64("yaw", s.Yaw)
	enc.AddFloat64("pitch", s.Pitch)
	enc.AddFloat64("sunX", s.Sun[0])
	enc.AddFloat64("sunY", s.Sun[1])
	enc.AddFloat64("sunZ", s.Sun[2])
	enc.AddFloat64("intensity", s.Intensity)
	enc.AddString("color", s.Color)
	enc.AddBool("dragging", s.Dragging)
	return nil
}
