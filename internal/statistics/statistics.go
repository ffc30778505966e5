package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// GameResult is the outcome of one finished game. Slices are indexed by
// lineup entry, not by the seat the entry happened to sit in.
type GameResult struct {
	Index         int           // position in the batch
	Seed          int64         // seed that reproduces the game
	Rounds        int           // rounds played
	Seating       []int         // Seating[seat] is the lineup entry in that seat
	Scores        []int         // final score per entry
	CompletedRows []int         // complete wall rows per entry
	Winner        int           // winning entry
	Duration      time.Duration // wall time spent playing
}

// SeatStats accumulates the results of one lineup entry.
type SeatStats struct {
	Strategy      string
	Games         int
	Wins          int
	SumScore      float64
	SumScore2     float64   // sum of squares for variance
	Values        []float64 // every final score, for median and percentiles
	CompletedRows int
	MaxScore      int
}

// Mean returns the mean final score.
func (s *SeatStats) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of final scores.
func (s *SeatStats) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of final scores.
func (s *SeatStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *SeatStats) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games won.
func (s *SeatStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// MeanRows returns the mean number of complete wall rows at game end.
func (s *SeatStats) MeanRows() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.CompletedRows) / float64(s.Games)
}

// Median returns the median final score.
func (s *SeatStats) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the final score at percentile p (0.0 to 1.0),
// interpolating between neighbours.
func (s *SeatStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *SeatStats) add(score, rows int, won bool) {
	v := float64(score)
	s.Games++
	s.SumScore += v
	s.SumScore2 += v * v
	s.Values = append(s.Values, v)
	s.CompletedRows += rows
	s.MaxScore = max(s.MaxScore, score)
	if won {
		s.Wins++
	}
}

// Statistics aggregates a batch of games with a fixed lineup.
type Statistics struct {
	Games     int
	Seats     []SeatStats
	SumRounds int
	Duration  time.Duration
}

// New returns empty statistics for the given lineup.
func New(strategies []string) *Statistics {
	s := &Statistics{Seats: make([]SeatStats, len(strategies))}
	for i, name := range strategies {
		s.Seats[i].Strategy = name
	}
	return s
}

// Add incorporates a game result.
func (s *Statistics) Add(r GameResult) error {
	n := len(s.Seats)
	if len(r.Scores) != n || len(r.CompletedRows) != n {
		return fmt.Errorf("game %d: result has %d scores for %d seats", r.Index, len(r.Scores), n)
	}
	if r.Winner < 0 || r.Winner >= n {
		return fmt.Errorf("game %d: winner %d out of range", r.Index, r.Winner)
	}
	s.Games++
	s.SumRounds += r.Rounds
	s.Duration += r.Duration
	for i := range s.Seats {
		s.Seats[i].add(r.Scores[i], r.CompletedRows[i], i == r.Winner)
	}
	return nil
}

// MeanRounds returns the mean game length in rounds.
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumRounds) / float64(s.Games)
}

// Validate checks the tallies agree with each other.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	wins := 0
	for _, seat := range s.Seats {
		if seat.Games != s.Games {
			return fmt.Errorf("%s played %d games, batch has %d", seat.Strategy, seat.Games, s.Games)
		}
		if len(seat.Values) != seat.Games {
			return fmt.Errorf("%s: values length (%d) does not match games (%d)", seat.Strategy, len(seat.Values), seat.Games)
		}
		wins += seat.Wins
	}
	if wins != s.Games {
		return fmt.Errorf("total wins (%d) do not match games (%d)", wins, s.Games)
	}
	return nil
}
