package scoring

import "github.com/trentd187/ryder-cup/internal/models"

// AdjustHole computes one hole's derived scoring fields from its raw scores and
// the game's handicap parameters, returning a copy of the hole with the six
// derived fields filled in. The input hole is never modified.
//
// If either raw score is missing, the hole counts as unplayed: both adjusted
// scores come back nil and all four match-play awards are 0, so the hole
// contributes nothing to any aggregate.
//
// Otherwise the receiving team's adjusted score is its raw score minus the
// strokes this hole's index earns it (the allowance makes the weaker player's
// effective score better, i.e. lower); the other team's adjusted score equals
// its raw score. The match-play awards then compare the two sides twice — once
// on raw scores, once on adjusted — with fewer strokes winning the hole:
// winner 1, loser 0, tie 0.5 each.
func AdjustHole(hole models.Hole, handicapStrokes float64, higherHandicapTeam models.Team) models.Hole {
	out := hole

	// Reset every derived field so a cleared score wipes stale results.
	out.USAPlayerAdjustedScore = nil
	out.EuropePlayerAdjustedScore = nil
	out.USAPlayerMatchPlayScore = 0
	out.EuropePlayerMatchPlayScore = 0
	out.USAPlayerMatchPlayAdjustedScore = 0
	out.EuropePlayerMatchPlayAdjustedScore = 0

	if !hole.Played() {
		return out
	}

	usaRaw := float64(*hole.USAPlayerScore)
	europeRaw := float64(*hole.EuropePlayerScore)

	usaAdjusted := usaRaw
	europeAdjusted := europeRaw
	strokes := StrokesForHole(handicapStrokes, hole.StrokeIndex)
	if higherHandicapTeam == models.TeamUSA {
		usaAdjusted -= strokes
	} else {
		europeAdjusted -= strokes
	}
	out.USAPlayerAdjustedScore = &usaAdjusted
	out.EuropePlayerAdjustedScore = &europeAdjusted

	// Lower score wins the hole in golf.
	out.USAPlayerMatchPlayScore, out.EuropePlayerMatchPlayScore = holeAward(usaRaw, europeRaw)
	out.USAPlayerMatchPlayAdjustedScore, out.EuropePlayerMatchPlayAdjustedScore = holeAward(usaAdjusted, europeAdjusted)

	return out
}

// holeAward splits one hole's match-play point between the two sides:
// the side with fewer strokes gets 1, the other 0; a tie is 0.5 each.
func holeAward(usa, europe float64) (float64, float64) {
	switch {
	case usa < europe:
		return 1, 0
	case europe < usa:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}
