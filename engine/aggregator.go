package engine

import "github.com/evdnx/gosb/types"

// Aggregate tallies the evaluators' votes for one symbol on one tick.
// A direction is adopted only when it holds at least two votes and the
// opposing direction holds none; every other distribution yields NONE.
// Precision over recall: a lone evaluator never trades on its own.
func Aggregate(symbol string, votes []types.Signal) types.Decision {
	d := types.Decision{Symbol: symbol, Direction: types.DirNone, Confidence: 1.0}
	for _, v := range votes {
		if !v.Valid {
			continue
		}
		if v.Side == types.Buy {
			d.BuyVotes++
		} else {
			d.SellVotes++
		}
	}
	switch {
	case d.BuyVotes >= 2 && d.SellVotes == 0:
		d.Direction = types.DirBuy
		d.Confidence = confidence(d.BuyVotes)
	case d.SellVotes >= 2 && d.BuyVotes == 0:
		d.Direction = types.DirSell
		d.Confidence = confidence(d.SellVotes)
	}
	return d
}

func confidence(votes int) float64 {
	switch {
	case votes >= 4:
		return 1.2
	case votes == 3:
		return 1.1
	case votes == 2:
		return 1.0
	}
	// unreachable given the two-vote floor, kept so the mapping is total
	return 0.9
}
