// Package model defines shared data structures.
package model

import "time"

// Config defines range settings resolved from flags and the config file.
type Config struct {
	Target   string
	Rings    int
	Diameter float64
	Shooter  string
	LogLevel string
	LogFile  string
}

// Point is a position in pixels relative to the target's top-left corner.
type Point struct {
	X float64
	Y float64
}

// TargetConfig describes a circular target with concentric scoring rings.
type TargetConfig struct {
	Name     string
	Rings    int
	Diameter float64
	MaxScore int
}

// Radius returns half the target diameter.
func (c TargetConfig) Radius() float64 {
	return c.Diameter / 2
}

// Center returns the target center.
func (c TargetConfig) Center() Point {
	return Point{X: c.Diameter / 2, Y: c.Diameter / 2}
}

// Shot is a single scored hit. Shots are never mutated after creation.
type Shot struct {
	X         float64
	Y         float64
	Timestamp time.Time
	Score     int
}

// Point returns the shot position.
func (s Shot) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

// Session states.
const (
	StatusNotStarted SessionStatus = "not_started"
	StatusActive     SessionStatus = "active"
	StatusCompleted  SessionStatus = "completed"
)

// String returns the display label for the status.
func (s SessionStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "not started"
	}
}

// Session is one continuous sequence of shots from start to end.
type Session struct {
	ID           string
	Shooter      string
	Target       string
	StartTime    time.Time
	EndTime      *time.Time
	Status       SessionStatus
	Shots        []Shot
	TotalScore   int
	AverageScore float64
}

// Duration returns the elapsed session time, up to now for an active session.
func (s Session) Duration(now time.Time) time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// SessionStats summarizes the shots of a session.
type SessionStats struct {
	TotalShots      int
	TotalScore      int
	AverageScore    float64
	BestShot        *Shot
	AccuracyPercent float64
}

// BestScore returns the best shot score or 0 when there are no shots.
func (s SessionStats) BestScore() int {
	if s.BestShot == nil {
		return 0
	}
	return s.BestShot.Score
}

// RingCount is the number of shots that scored a given value.
type RingCount struct {
	Score int
	Count int
}

// GroupStats describes the spread of a shot group.
type GroupStats struct {
	// Offset of the mean point of impact from the target center, in pixels.
	OffsetX float64
	OffsetY float64
	// Distance of the mean point of impact from the center.
	OffsetDistance float64
	// Largest center-to-center distance between any two shots.
	ExtremeSpread float64
}
