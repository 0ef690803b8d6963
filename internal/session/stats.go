package session

import (
	"github.com/verte-zerg/bullseye/internal/model"
	"github.com/verte-zerg/bullseye/internal/target"
)

// ComputeStats recomputes session statistics from the full shot list.
// The best shot is the highest score; ties go to the earliest shot.
func ComputeStats(shots []model.Shot, maxScore int) model.SessionStats {
	if len(shots) == 0 {
		return model.SessionStats{}
	}
	threshold := target.AccuracyThreshold(maxScore)
	total := 0
	accurate := 0
	best := 0
	for i, s := range shots {
		total += s.Score
		if s.Score >= threshold {
			accurate++
		}
		if s.Score > shots[best].Score {
			best = i
		}
	}
	bestShot := shots[best]
	count := float64(len(shots))
	return model.SessionStats{
		TotalShots:      len(shots),
		TotalScore:      total,
		AverageScore:    float64(total) / count,
		BestShot:        &bestShot,
		AccuracyPercent: float64(accurate) / count * 100,
	}
}
