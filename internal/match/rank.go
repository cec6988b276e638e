package match

import (
	"errors"
	"sort"
)

// ErrEmptyOverlap reports that no candidate group shares any sample
// number with the series, so no match can be computed at all.
var ErrEmptyOverlap = errors.New("no candidate group shares any sample number with the series")

// Rank orders scores best first: composite ascending, then lab count
// descending (more participating labs is more reliable), then instrument
// and group name ascending. The result is the same for any input order.
func Rank(scores []GroupScore) ([]GroupScore, error) {
	if len(scores) == 0 {
		return nil, ErrEmptyOverlap
	}
	out := make([]GroupScore, len(scores))
	copy(out, scores)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Composite != b.Composite {
			return a.Composite < b.Composite
		}
		if a.Labs != b.Labs {
			return a.Labs > b.Labs
		}
		if a.Candidate.Instrument != b.Candidate.Instrument {
			return a.Candidate.Instrument < b.Candidate.Instrument
		}
		return a.Candidate.Group < b.Candidate.Group
	})
	return out, nil
}
