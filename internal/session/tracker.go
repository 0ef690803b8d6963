// Package session tracks a single shooting session and its running statistics.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/bullseye/internal/logging"
	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/target"
)

// ErrTargetLocked is returned when the target is reconfigured during an active session.
var ErrTargetLocked = errors.New("target cannot change while a session is active")

// Tracker owns the current session. It is not safe for concurrent use.
type Tracker struct {
	target  model.TargetConfig
	shooter string
	session *model.Session
	stats   model.SessionStats

	now   func() time.Time
	newID func() string
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithIDs overrides session identifier generation.
func WithIDs(newID func() string) Option {
	return func(t *Tracker) {
		t.newID = newID
	}
}

// WithShooter stamps sessions with a shooter name.
func WithShooter(name string) Option {
	return func(t *Tracker) {
		t.shooter = name
	}
}

// NewTracker returns a tracker for the given target with no session started.
func NewTracker(cfg model.TargetConfig, opts ...Option) (*Tracker, error) {
	if err := target.Validate(cfg); err != nil {
		return nil, err
	}
	t := &Tracker{
		target: cfg,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Configure replaces the target. The current config is kept on error.
func (t *Tracker) Configure(cfg model.TargetConfig) error {
	if t.active() {
		return ErrTargetLocked
	}
	if err := target.Validate(cfg); err != nil {
		return err
	}
	t.target = cfg
	logging.Log.WithFields(logrus.Fields{
		"target": cfg.Name,
		"rings":  cfg.Rings,
		"size":   cfg.Diameter,
	}).Debug("target configured")
	return nil
}

// Target returns the configured target.
func (t *Tracker) Target() model.TargetConfig {
	return t.target
}

// Start begins a new session. While a session is active it is returned unchanged.
func (t *Tracker) Start() model.Session {
	if t.active() {
		return t.snapshot()
	}
	t.session = &model.Session{
		ID:        t.newID(),
		Shooter:   t.shooter,
		Target:    t.target.Name,
		StartTime: t.now(),
		Status:    model.StatusActive,
	}
	t.recompute()
	logging.Log.WithField("session", t.session.ID).Info("session started")
	return t.snapshot()
}

// End completes the active session. Outside an active session it is a no-op.
func (t *Tracker) End() model.Session {
	if !t.active() {
		return t.snapshot()
	}
	ended := t.now()
	t.session.EndTime = &ended
	t.session.Status = model.StatusCompleted
	logging.Log.WithFields(logrus.Fields{
		"session": t.session.ID,
		"shots":   len(t.session.Shots),
		"score":   t.session.TotalScore,
	}).Info("session completed")
	return t.snapshot()
}

// RecordShot scores p and appends it to the active session.
// ok is false when no session is active; nothing is recorded then.
func (t *Tracker) RecordShot(p model.Point) (shot model.Shot, stats model.SessionStats, ok bool) {
	if !t.active() {
		return model.Shot{}, t.stats, false
	}
	shot = model.Shot{
		X:         p.X,
		Y:         p.Y,
		Timestamp: t.now(),
		Score:     target.Score(p, t.target),
	}
	t.session.Shots = append(t.session.Shots, shot)
	t.recompute()
	logging.Log.WithFields(logrus.Fields{
		"session": t.session.ID,
		"score":   shot.Score,
		"x":       p.X,
		"y":       p.Y,
	}).Debug("shot recorded")
	return shot, t.stats, true
}

// UndoLastShot removes the most recent shot of the active session.
func (t *Tracker) UndoLastShot() model.SessionStats {
	if !t.active() || len(t.session.Shots) == 0 {
		return t.stats
	}
	t.session.Shots = t.session.Shots[:len(t.session.Shots)-1]
	t.recompute()
	logging.Log.WithFields(logrus.Fields{
		"session": t.session.ID,
		"shots":   len(t.session.Shots),
	}).Debug("shot undone")
	return t.stats
}

// Session returns a copy of the current session; ok is false before the first start.
func (t *Tracker) Session() (model.Session, bool) {
	if t.session == nil {
		return model.Session{Status: model.StatusNotStarted}, false
	}
	return t.snapshot(), true
}

// Status returns the lifecycle state of the current session.
func (t *Tracker) Status() model.SessionStatus {
	if t.session == nil {
		return model.StatusNotStarted
	}
	return t.session.Status
}

// Stats returns the statistics of the current session.
func (t *Tracker) Stats() model.SessionStats {
	return t.stats
}

// RecentShots returns up to n shots, newest first.
func (t *Tracker) RecentShots(n int) []model.Shot {
	if t.session == nil || n <= 0 {
		return nil
	}
	shots := t.session.Shots
	if n > len(shots) {
		n = len(shots)
	}
	out := make([]model.Shot, 0, n)
	for i := len(shots) - 1; i >= len(shots)-n; i-- {
		out = append(out, shots[i])
	}
	return out
}

func (t *Tracker) active() bool {
	return t.session != nil && t.session.Status == model.StatusActive
}

func (t *Tracker) recompute() {
	t.stats = ComputeStats(t.session.Shots, t.target.MaxScore)
	t.session.TotalScore = t.stats.TotalScore
	t.session.AverageScore = t.stats.AverageScore
}

func (t *Tracker) snapshot() model.Session {
	if t.session == nil {
		return model.Session{Status: model.StatusNotStarted}
	}
	s := *t.session
	s.Shots = append([]model.Shot(nil), t.session.Shots...)
	if t.session.EndTime != nil {
		ended := *t.session.EndTime
		s.EndTime = &ended
	}
	return s
}
