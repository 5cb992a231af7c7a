package grading

import "math"

// Grade aplica as regras de cada família sobre o placar final e decide se a
// seleção venceu. Assume que sel veio de Parse ou FromStructured com ok=true.
func Grade(sel Selection, homeGoals, awayGoals int) bool {
	switch sel.Family {
	case FamilyMatchWinner:
		switch sel.Winner {
		case SideHome:
			return homeGoals > awayGoals
		case SideAway:
			return awayGoals > homeGoals
		case SideDraw:
			return homeGoals == awayGoals
		}
		return false

	case FamilyOverUnder:
		total := float64(homeGoals + awayGoals)
		if sel.Direction == DirOver {
			return total > sel.Threshold
		}
		return total < sel.Threshold

	case FamilyBothScore:
		both := homeGoals > 0 && awayGoals > 0
		return both == sel.BothScore
	}
	return false
}

// PayoutCents calcula o resultado financeiro líquido da aposta, em centavos.
// Vitória: stake × odds − stake (só o lucro). Derrota: −stake.
func PayoutCents(stakeCents int64, odds float64, won bool) int64 {
	if !won {
		return -stakeCents
	}
	return int64(math.Round(float64(stakeCents)*odds)) - stakeCents
}
