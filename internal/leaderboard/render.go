// Package leaderboard turns ranked entries into the podium and row layout.
package leaderboard

import "github.com/predict-win/internal/domain"

// Medal classes
const (
	MedalGold   = "gold"
	MedalSilver = "silver"
	MedalBronze = "bronze"
)

// Row is a rendered leaderboard line
type Row struct {
	domain.LeaderboardEntry
	Medal    string `json:"medal,omitempty"`
	Appended bool   `json:"appended,omitempty"`
}

// Board is the rendered leaderboard
type Board struct {
	Podium []Row `json:"podium,omitempty"`
	Rows   []Row `json:"rows"`
}

// MedalFor returns the medal class of a rank
func MedalFor(rank int64) string {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return ""
	}
}

// ShowsPodium reports whether scope renders a podium
func ShowsPodium(scope domain.Scope) bool {
	return scope == domain.ScopeGlobal
}

// Render lays out entries in the order given. With podium the first three
// entries are shown as 2-1-3 and the rest as rows. When no entry belongs to
// the viewing user, self is appended once at the end of the rows. An unranked
// self (rank 0) is never appended.
func Render(entries []domain.LeaderboardEntry, self domain.LeaderboardEntry, podium bool) Board {
	b := Board{Rows: []Row{}}

	found := false
	rest := entries
	if podium {
		n := min(3, len(entries))
		top := entries[:n]
		rest = entries[n:]
		for _, i := range podiumOrder(n) {
			b.Podium = append(b.Podium, row(top[i], self))
		}
		for _, e := range top {
			found = found || isSelf(e, self)
		}
	}

	for _, e := range rest {
		found = found || isSelf(e, self)
		b.Rows = append(b.Rows, row(e, self))
	}

	if !found && self.Rank > 0 {
		me := self
		me.IsCurrentUser = true
		b.Rows = append(b.Rows, Row{LeaderboardEntry: me, Medal: MedalFor(me.Rank), Appended: true})
	}
	return b
}

// podiumOrder returns indexes into the top entries in display order
func podiumOrder(n int) []int {
	switch n {
	case 0:
		return nil
	case 1:
		return []int{0}
	case 2:
		return []int{1, 0}
	default:
		return []int{1, 0, 2}
	}
}

func row(e, self domain.LeaderboardEntry) Row {
	if isSelf(e, self) {
		e.IsCurrentUser = true
	}
	return Row{LeaderboardEntry: e, Medal: MedalFor(e.Rank)}
}

func isSelf(e, self domain.LeaderboardEntry) bool {
	return e.IsCurrentUser || (self.ID != "" && e.ID == self.ID)
}
