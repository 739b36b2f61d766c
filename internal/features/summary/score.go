package summary

// Score is the additive point heuristic behind PermissionLevel. The weights
// and thresholds are relied on elsewhere and must not be tuned.
func Score(c Capabilities) int {
	score := 0
	if c.CanReadName {
		score++
	}
	if c.CanReadPhone {
		score++
	}
	if c.CanReadEmail {
		score++
	}
	if c.anyWrite() {
		score += 2
	}
	if c.CanViewAppointments {
		score++
	}
	if c.CanViewInvoices {
		score++
	}
	if c.CanCreateAppointments || c.CanCreateInvoices {
		score += 2
	}
	// Spent and points come from the same financial scope.
	if c.CanReadTotalSpent || c.CanReadTotalPoints {
		score += 2
	}
	if c.CanDeleteCustomer {
		score += 5
	}
	return score
}

func LabelForScore(score int) Level {
	switch {
	case score <= 0:
		return LevelNone
	case score <= 3:
		return LevelBasic
	case score <= 7:
		return LevelExtended
	case score <= 12:
		return LevelFull
	default:
		return LevelAdmin
	}
}
