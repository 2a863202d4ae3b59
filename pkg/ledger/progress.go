package ledger

import (
	"math"

	"github.com/tally-app/tally/pkg/money"
	"github.com/tally-app/tally/pkg/transaction"
)

type Tier string

const (
	TierNormal Tier = "normal"
	TierNear   Tier = "near"
	TierOver   Tier = "over"
)

// NearThreshold is the spend ratio from which a category is reported as near its limit.
const NearThreshold = 0.75

type Progress struct {
	Spent money.Amount
	Limit money.Amount
	// Ratio is Spent/Limit, unclamped. It is 0 when there is no positive limit.
	Ratio        float64
	ClampedRatio float64
	Tier         Tier
}

// CategoryExpenses sums the expense transactions of a category. It is the only
// place category spend is computed, whatever list the caller has at hand.
func CategoryExpenses(categoryId int, transactions []transaction.Transaction) money.Amount {
	total := money.Zero
	for _, t := range transactions {
		if t.Type == transaction.Expense && t.InCategory(categoryId) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ProgressOf classifies spend against a limit. A zero or negative limit gives
// ratio 0 and TierNormal.
func ProgressOf(limit money.Amount, spent money.Amount) Progress {
	ratio := spent.Ratio(limit)
	return Progress{
		Spent:        spent,
		Limit:        limit,
		Ratio:        ratio,
		ClampedRatio: clamp(ratio),
		Tier:         TierFor(ratio),
	}
}

// CategoryProgress is CategoryExpenses followed by ProgressOf.
func CategoryProgress(categoryId int, limit money.Amount, transactions []transaction.Transaction) Progress {
	return ProgressOf(limit, CategoryExpenses(categoryId, transactions))
}

func TierFor(ratio float64) Tier {
	switch {
	case ratio >= 1:
		return TierOver
	case ratio >= NearThreshold:
		return TierNear
	default:
		return TierNormal
	}
}

func clamp(ratio float64) float64 {
	if ratio < 0 || math.IsNaN(ratio) {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
