// Package align pairs the cues of two independently generated subtitle tracks
// by time. Autotranslated tracks do not share cue boundaries or counts, so the
// pairing is a greedy nearest-interval match with one-to-one consumption.
package align

import (
	"time"

	"ytparallel/vtt"
)

// DefaultMatchWindow is how far apart two cue starts may be and still pair up
// when their time ranges do not overlap.
const DefaultMatchWindow = 3 * time.Second

// Options tunes the matching heuristics. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// MatchWindow is the maximum start-time distance for pairing
	// non-overlapping cues.
	MatchWindow time.Duration
	// PreferOverlap picks the candidate with the largest overlapped duration
	// before falling back to nearest start. Disabling it makes the match purely
	// nearest-start, which is occasionally useful for badly timed tracks.
	PreferOverlap bool
}

// DefaultOptions returns the matching parameters used by the CLI unless
// overridden in configuration.
func DefaultOptions() Options {
	return Options{
		MatchWindow:   DefaultMatchWindow,
		PreferOverlap: true,
	}
}

// Pair is one row of the parallel output. Either side may be nil, never both.
type Pair struct {
	Primary   *vtt.Cue
	Secondary *vtt.Cue
}

// Anchor is the timestamp that orders this pair relative to others: the
// earlier start of whichever sides are present.
func (p Pair) Anchor() time.Duration {
	switch {
	case p.Primary != nil && p.Secondary != nil:
		if p.Secondary.Start < p.Primary.Start {
			return p.Secondary.Start
		}
		return p.Primary.Start
	case p.Primary != nil:
		return p.Primary.Start
	default:
		return p.Secondary.Start
	}
}

// Tracks aligns two cue lists into time-ordered pairs. Every input cue appears
// in exactly one pair; cues that find no partner within the match window
// surface as half-empty pairs. The result is deterministic: ties on start time
// make the primary cue the driver.
func Tracks(primary, secondary []vtt.Cue, opts Options) []Pair {
	if opts.MatchWindow <= 0 {
		opts.MatchWindow = DefaultMatchWindow
	}

	primaryUsed := make([]bool, len(primary))
	secondaryUsed := make([]bool, len(secondary))
	pairs := make([]Pair, 0, max(len(primary), len(secondary)))

	pi, si := 0, 0
	for {
		// Advance each cursor past cues already consumed as matches.
		for pi < len(primary) && primaryUsed[pi] {
			pi++
		}
		for si < len(secondary) && secondaryUsed[si] {
			si++
		}
		if pi >= len(primary) && si >= len(secondary) {
			break
		}

		// The driver is the earliest unconsumed cue across both tracks;
		// ties go to the primary track.
		driverIsPrimary := si >= len(secondary) ||
			(pi < len(primary) && primary[pi].Start <= secondary[si].Start)

		if driverIsPrimary {
			driver := &primary[pi]
			primaryUsed[pi] = true
			match := findMatch(*driver, secondary, secondaryUsed, opts)
			var matched *vtt.Cue
			if match >= 0 {
				secondaryUsed[match] = true
				matched = &secondary[match]
			}
			pairs = append(pairs, Pair{Primary: driver, Secondary: matched})
		} else {
			driver := &secondary[si]
			secondaryUsed[si] = true
			match := findMatch(*driver, primary, primaryUsed, opts)
			var matched *vtt.Cue
			if match >= 0 {
				primaryUsed[match] = true
				matched = &primary[match]
			}
			pairs = append(pairs, Pair{Primary: matched, Secondary: driver})
		}
	}

	return pairs
}

// findMatch picks the best unconsumed candidate for the driver cue: the one
// with the largest interval overlap, or failing any overlap, the one whose
// start is nearest the driver's start within the match window. Returns -1 when
// nothing qualifies.
func findMatch(driver vtt.Cue, candidates []vtt.Cue, used []bool, opts Options) int {
	best := -1
	var bestOverlap time.Duration
	var bestDistance time.Duration

	for i := range candidates {
		if used[i] {
			continue
		}
		c := candidates[i]

		// Candidates are time-ordered; once a cue starts beyond both the
		// driver's end and the match window, nothing later can qualify.
		if c.Start > driver.End && c.Start-driver.Start > opts.MatchWindow {
			break
		}

		if opts.PreferOverlap {
			if ov := driver.Overlap(c); ov > 0 {
				if best == -1 || bestOverlap <= 0 || ov > bestOverlap {
					best = i
					bestOverlap = ov
				}
				continue
			}
			if bestOverlap > 0 {
				// An overlapping candidate always beats a near one.
				continue
			}
		}

		distance := driver.Start - c.Start
		if distance < 0 {
			distance = -distance
		}
		if distance > opts.MatchWindow {
			continue
		}
		if best == -1 || distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}

	return best
}
