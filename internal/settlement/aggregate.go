package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"koperasi-pos/internal/database/models"
)

const (
	SummaryStatusPaid    = "paid"
	SummaryStatusPartial = "partial"
	SummaryStatusUnpaid  = "unpaid"
)

type MemberDebtSummary struct {
	MemberID       int64  `json:"member_id"`
	MemberName     string `json:"member_name"`
	DebtCount      int    `json:"debt_count"`
	TotalOriginal  string `json:"total_original"`
	TotalPaid      string `json:"total_paid"`
	TotalRemaining string `json:"total_remaining"`
	Status         string `json:"status"`
}

// SummarizeDebtsByMember groups debts per member and sums their amounts.
// Input ordering does not matter; output is sorted by remaining balance
// descending, member id ascending on ties.
func SummarizeDebtsByMember(debts []models.Debt) []MemberDebtSummary {
	type acc struct {
		name      string
		count     int
		original  decimal.Decimal
		paid      decimal.Decimal
		remaining decimal.Decimal
	}

	byMember := make(map[int64]*acc)
	for _, d := range debts {
		a, ok := byMember[d.MemberID]
		if !ok {
			a = &acc{name: d.MemberName}
			byMember[d.MemberID] = a
		}
		a.count++
		a.original = a.original.Add(mustDecimal(d.OriginalAmount))
		a.paid = a.paid.Add(mustDecimal(d.AmountPaid))
		a.remaining = a.remaining.Add(mustDecimal(d.RemainingAmount))
	}

	summaries := make([]MemberDebtSummary, 0, len(byMember))
	for id, a := range byMember {
		status := SummaryStatusUnpaid
		switch {
		case a.remaining.IsZero():
			status = SummaryStatusPaid
		case a.paid.GreaterThan(decimal.Zero):
			status = SummaryStatusPartial
		}
		summaries = append(summaries, MemberDebtSummary{
			MemberID:       id,
			MemberName:     a.name,
			DebtCount:      a.count,
			TotalOriginal:  a.original.StringFixed(2),
			TotalPaid:      a.paid.StringFixed(2),
			TotalRemaining: a.remaining.StringFixed(2),
			Status:         status,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		ri := mustDecimal(summaries[i].TotalRemaining)
		rj := mustDecimal(summaries[j].TotalRemaining)
		if !ri.Equal(rj) {
			return ri.GreaterThan(rj)
		}
		return summaries[i].MemberID < summaries[j].MemberID
	})
	return summaries
}

// mustDecimal treats malformed stored amounts as zero so aggregation never
// fails on a single bad record.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
