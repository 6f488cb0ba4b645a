package recognition

import "github.com/JaimeStill/heritage/internal/classifier"

// DefaultThreshold is the confidence a prediction must exceed to be accepted.
const DefaultThreshold = 0.80

// Decision is the gate's verdict on one distribution.
// Label and Index are only meaningful when Known is true.
type Decision struct {
	Known      bool    `json:"known"`
	Label      string  `json:"label,omitempty"`
	Index      int     `json:"index"`
	Confidence float64 `json:"confidence"`
	ImageHash  string  `json:"image_hash,omitempty"`
}

// Gate accepts a prediction only when its top score strictly exceeds Threshold.
type Gate struct {
	Threshold float64
}

// Decide picks the highest score, earliest index on ties, and compares it to the threshold.
// An empty distribution is Unknown with zero confidence.
func (g Gate) Decide(dist classifier.Distribution, labels classifier.Labels) Decision {
	if len(dist) == 0 {
		return Decision{Index: -1}
	}

	best := 0
	for i, p := range dist[1:] {
		if p > dist[best] {
			best = i + 1
		}
	}

	d := Decision{
		Index:      best,
		Confidence: dist[best],
	}
	if d.Confidence > g.Threshold && best < len(labels) {
		d.Known = true
		d.Label = labels[best]
	}
	return d
}
