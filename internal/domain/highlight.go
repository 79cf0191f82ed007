package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HighlightRules are the bounds applied by the candidate pipeline.
type HighlightRules struct {
	SegmentsPerGroup int
	MinDuration      float64
	MaxDuration      float64
	OverlapThreshold float64
	TopK             int
	FinalMin         int
	FinalMax         int
}

func DefaultHighlightRules() HighlightRules {
	return HighlightRules{
		SegmentsPerGroup: 4,
		MinDuration:      15,
		MaxDuration:      120,
		OverlapThreshold: 0.8,
		TopK:             10,
		FinalMin:         3,
		FinalMax:         5,
	}
}

// Candidate is an unranked highlight proposal.
type Candidate struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Title     string  `json:"title"`
	Reason    string  `json:"reason"`
	Strength  float64 `json:"strength"`
}

func (c Candidate) Duration() float64 {
	return c.EndTime - c.StartTime
}

// RawCandidate is a candidate exactly as decoded from the reasoning service.
// Fields stay untyped until ParseCandidates checks them.
type RawCandidate struct {
	StartTime any `json:"startTime"`
	EndTime   any `json:"endTime"`
	Title     any `json:"title"`
	Reason    any `json:"reason"`
	Strength  any `json:"strength"`
}

// RawHighlight is a final selection entry as decoded from the reasoning service.
type RawHighlight struct {
	Index     any `json:"index,omitempty"`
	StartTime any `json:"startTime"`
	EndTime   any `json:"endTime"`
	Title     any `json:"title"`
	Reason    any `json:"reason"`
}

// Highlight is one final, displayable time range.
type Highlight struct {
	Index     int     `json:"index,omitempty"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Title     string  `json:"title"`
	Reason    string  `json:"reason"`

	badTimes bool
}

// UnmarshalJSON accepts stored rows whose times are missing or not numbers;
// Validate reports them so a single bad entry does not poison a whole set.
func (h *Highlight) UnmarshalJSON(b []byte) error {
	var raw RawHighlight
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, okStart := raw.StartTime.(float64)
	end, okEnd := raw.EndTime.(float64)
	idx, _ := raw.Index.(float64)
	title, _ := raw.Title.(string)
	reason, _ := raw.Reason.(string)

	*h = Highlight{
		Index:     int(idx),
		StartTime: start,
		EndTime:   end,
		Title:     title,
		Reason:    reason,
		badTimes:  !okStart || !okEnd,
	}
	return nil
}

func (h Highlight) Duration() float64 {
	return h.EndTime - h.StartTime
}

// Validate checks the highlight carries a usable numeric time range.
func (h Highlight) Validate() error {
	if h.badTimes || math.IsNaN(h.StartTime) || math.IsNaN(h.EndTime) ||
		math.IsInf(h.StartTime, 0) || math.IsInf(h.EndTime, 0) {
		return fmt.Errorf("%w: invalid highlight time range", ErrValidation)
	}
	if h.StartTime < 0 || h.EndTime <= h.StartTime {
		return fmt.Errorf("%w: invalid highlight time range %s-%s", ErrValidation, formatSeconds(h.StartTime), formatSeconds(h.EndTime))
	}
	return nil
}

// Label identifies a highlight in failure reports.
func (h Highlight) Label() string {
	if h.Index > 0 {
		return fmt.Sprintf("index %d", h.Index)
	}
	return fmt.Sprintf("time %s-%s", formatSeconds(h.StartTime), formatSeconds(h.EndTime))
}

// HighlightSet is one generation run; the newest set per video wins.
type HighlightSet struct {
	ID           string
	VideoID      string
	TranscriptID string
	Highlights   []Highlight
	CreatedAt    time.Time
}

func NewHighlightSet(videoID, transcriptID string, highlights []Highlight) *HighlightSet {
	return &HighlightSet{
		ID:           uuid.NewString(),
		VideoID:      videoID,
		TranscriptID: transcriptID,
		Highlights:   highlights,
		CreatedAt:    time.Now().UTC(),
	}
}

// ChunkSegments partitions segments into consecutive groups of size.
func ChunkSegments(segments []Segment, size int) [][]Segment {
	if size <= 0 {
		size = 1
	}
	var groups [][]Segment
	for i := 0; i < len(segments); i += size {
		end := min(i+size, len(segments))
		groups = append(groups, segments[i:end])
	}
	return groups
}

// FormatSegments renders one "[start - end] text" line per segment.
func FormatSegments(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s", formatSeconds(s.Start), formatSeconds(s.End), s.Text))
	}
	return strings.Join(lines, "\n")
}

// FormatCandidates renders one "[start-end] title (strength) reason" line per candidate.
func FormatCandidates(cands []Candidate) string {
	lines := make([]string, 0, len(cands))
	for _, c := range cands {
		lines = append(lines, fmt.Sprintf("[%s-%s] %s (%s) %s",
			formatSeconds(c.StartTime), formatSeconds(c.EndTime), c.Title, formatSeconds(c.Strength), c.Reason))
	}
	return strings.Join(lines, "\n")
}

// ParseCandidates keeps well-typed entries with start < end. Strength is
// clamped to [0,1].
func ParseCandidates(raw []RawCandidate) []Candidate {
	out := make([]Candidate, 0, len(raw))
	for _, r := range raw {
		start, ok := r.StartTime.(float64)
		if !ok {
			continue
		}
		end, ok := r.EndTime.(float64)
		if !ok {
			continue
		}
		title, ok := r.Title.(string)
		if !ok {
			continue
		}
		reason, ok := r.Reason.(string)
		if !ok {
			continue
		}
		strength, ok := r.Strength.(float64)
		if !ok || math.IsNaN(strength) {
			continue
		}
		if math.IsNaN(start) || math.IsNaN(end) || start >= end {
			continue
		}
		out = append(out, Candidate{
			StartTime: start,
			EndTime:   end,
			Title:     title,
			Reason:    reason,
			Strength:  math.Max(0, math.Min(1, strength)),
		})
	}
	return out
}

// NormalizeDurations truncates candidates longer than maxDur to maxDur from
// their start and drops those shorter than minDur.
func NormalizeDurations(cands []Candidate, minDur, maxDur float64) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Duration() > maxDur {
			c.EndTime = c.StartTime + maxDur
		}
		if c.Duration() < minDur {
			continue
		}
		out = append(out, c)
	}
	return out
}

// OverlapRatio is the overlap of a and b divided by the shorter duration.
// Disjoint ranges yield a value <= 0.
func OverlapRatio(aStart, aEnd, bStart, bEnd float64) float64 {
	shorter := math.Min(aEnd-aStart, bEnd-bStart)
	if shorter <= 0 {
		return 0
	}
	overlap := math.Min(aEnd, bEnd) - math.Max(aStart, bStart)
	return overlap / shorter
}

// Deduplicate walks candidates in order and drops any whose overlap ratio with
// an already kept candidate exceeds threshold.
func Deduplicate(cands []Candidate, threshold float64) []Candidate {
	kept := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		dup := false
		for _, k := range kept {
			if OverlapRatio(c.StartTime, c.EndTime, k.StartTime, k.EndTime) > threshold {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	return kept
}

// RankCandidates orders by strength, strongest first, and keeps the top k.
// Ties keep their input order.
func RankCandidates(cands []Candidate, k int) []Candidate {
	ranked := make([]Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Strength > ranked[j].Strength })
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// ParseFinalSelection validates the final set and assigns 1-based indexes.
func ParseFinalSelection(raw []RawHighlight, minCount, maxCount int) ([]Highlight, error) {
	if len(raw) < minCount || len(raw) > maxCount {
		return nil, fmt.Errorf("%w: got %d, want %d-%d", ErrSelectionOutOfRange, len(raw), minCount, maxCount)
	}
	out := make([]Highlight, 0, len(raw))
	for i, r := range raw {
		start, okStart := r.StartTime.(float64)
		end, okEnd := r.EndTime.(float64)
		if !okStart || !okEnd {
			return nil, fmt.Errorf("%w: highlight %d has non-numeric times", ErrMalformedPayload, i+1)
		}
		title, _ := r.Title.(string)
		reason, _ := r.Reason.(string)
		out = append(out, Highlight{
			Index:     i + 1,
			StartTime: start,
			EndTime:   end,
			Title:     strings.TrimSpace(title),
			Reason:    strings.TrimSpace(reason),
		})
	}
	return out, nil
}

// ClampFinal re-applies the duration bounds to the final set. A highlight that
// is still too short afterwards is a fatal contract violation.
func ClampFinal(hs []Highlight, minDur, maxDur float64) ([]Highlight, error) {
	out := make([]Highlight, 0, len(hs))
	for _, h := range hs {
		if h.Duration() > maxDur {
			h.EndTime = h.StartTime + maxDur
		}
		if h.Duration() < minDur {
			return nil, fmt.Errorf("%w: %s lasts %ss", ErrHighlightTooShort, h.Label(), formatSeconds(h.Duration()))
		}
		out = append(out, h)
	}
	return out, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
