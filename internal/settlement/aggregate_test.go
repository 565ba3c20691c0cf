package settlement

import (
	"testing"

	"koperasi-pos/internal/database/models"
)

func debt(memberID int64, name, original, paid, remaining, status string) models.Debt {
	return models.Debt{
		MemberID:        memberID,
		MemberName:      name,
		OriginalAmount:  original,
		AmountPaid:      paid,
		RemainingAmount: remaining,
		Status:          status,
	}
}

func TestSummarizeDebtsByMemberEmpty(t *testing.T) {
	got := SummarizeDebtsByMember(nil)
	if len(got) != 0 {
		t.Fatalf("summary of no debts = %+v, want empty", got)
	}
}

func TestSummarizeDebtsByMember(t *testing.T) {
	debts := []models.Debt{
		debt(1, "Ahmad Hidayat", "75000.00", "30000.00", "45000.00", models.DebtStatusUnpaid),
		debt(2, "Siti Nurhaliza", "15000.00", "15000.00", "0.00", models.DebtStatusPaid),
		debt(1, "Ahmad Hidayat", "20000.00", "0.00", "20000.00", models.DebtStatusUnpaid),
		debt(3, "Budi Santoso", "50000.00", "0.00", "50000.00", models.DebtStatusUnpaid),
	}

	got := SummarizeDebtsByMember(debts)
	if len(got) != 3 {
		t.Fatalf("summary has %d members, want 3", len(got))
	}

	// Sorted by remaining balance descending.
	if got[0].MemberID != 1 || got[1].MemberID != 3 || got[2].MemberID != 2 {
		t.Fatalf("sort order wrong: %+v", got)
	}

	ahmad := got[0]
	if ahmad.DebtCount != 2 {
		t.Fatalf("debt count = %d, want 2", ahmad.DebtCount)
	}
	if ahmad.TotalOriginal != "95000.00" || ahmad.TotalPaid != "30000.00" || ahmad.TotalRemaining != "65000.00" {
		t.Fatalf("sums wrong: %+v", ahmad)
	}
	if ahmad.Status != SummaryStatusPartial {
		t.Fatalf("status = %s, want partial", ahmad.Status)
	}
	if got[1].Status != SummaryStatusUnpaid {
		t.Fatalf("status = %s, want unpaid", got[1].Status)
	}
	if got[2].Status != SummaryStatusPaid {
		t.Fatalf("status = %s, want paid", got[2].Status)
	}
}

func TestSummarizeDebtsByMemberOrderIndependent(t *testing.T) {
	forward := []models.Debt{
		debt(1, "Ahmad Hidayat", "75000.00", "30000.00", "45000.00", models.DebtStatusUnpaid),
		debt(1, "Ahmad Hidayat", "20000.00", "0.00", "20000.00", models.DebtStatusUnpaid),
		debt(2, "Siti Nurhaliza", "15000.00", "15000.00", "0.00", models.DebtStatusPaid),
	}
	reversed := []models.Debt{forward[2], forward[1], forward[0]}

	a := SummarizeDebtsByMember(forward)
	b := SummarizeDebtsByMember(reversed)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("summary differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSummarizeDebtsByMemberMalformedAmounts(t *testing.T) {
	debts := []models.Debt{
		debt(1, "Ahmad Hidayat", "not-a-number", "", "10000.00", models.DebtStatusUnpaid),
	}
	got := SummarizeDebtsByMember(debts)
	if len(got) != 1 {
		t.Fatalf("summary has %d members, want 1", len(got))
	}
	if got[0].TotalOriginal != "0.00" || got[0].TotalRemaining != "10000.00" {
		t.Fatalf("malformed amounts not treated as zero: %+v", got[0])
	}
}
