package blitz

// Scoreboard holds per-round scores for each player. Running totals are
// always derived by summation so a late deduction to a round stays visible
// in the total.
type Scoreboard struct {
	Scores [][]int
}

// NewScoreboard creates an empty scoreboard for the given player count.
func NewScoreboard(players int) *Scoreboard {
	return &Scoreboard{Scores: make([][]int, players)}
}

// AddRound appends one score per player for a finished round.
func (sb *Scoreboard) AddRound(scores []int) {
	for i, s := range scores {
		sb.Scores[i] = append(sb.Scores[i], s)
	}
}

// Totals returns each player's running total.
func (sb *Scoreboard) Totals() []int {
	totals := make([]int, len(sb.Scores))
	for i, rounds := range sb.Scores {
		for _, s := range rounds {
			totals[i] += s
		}
	}
	return totals
}

// RoundScores returns the per-player scores recorded for round r, or nil if
// the round has not been scored for every player yet.
func (sb *Scoreboard) RoundScores(r int) []int {
	scores := make([]int, len(sb.Scores))
	for i, rounds := range sb.Scores {
		if r < 0 || r >= len(rounds) {
			return nil
		}
		scores[i] = rounds[r]
	}
	return scores
}
