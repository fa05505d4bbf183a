package validate

import (
	"strings"
	"testing"

	"github.com/salesdw/salesdw/internal/model"
)

func TestEntityReportCap(t *testing.T) {
	er := NewEntityReport(model.EntitySales, 2)
	er.Accept()
	for i := 0; i < 5; i++ {
		er.Reject(NewRowError(model.EntitySales, "T1", i+2, KindAccuracy, "bad"))
	}

	if er.Total != 6 {
		t.Errorf("Total = %d, want 6", er.Total)
	}
	if er.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", er.Accepted)
	}
	if er.Rejected != 5 {
		t.Errorf("Rejected = %d, want 5", er.Rejected)
	}
	// Only the first two errors are retained; the count is unaffected.
	if len(er.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(er.Errors))
	}
}

func TestReportTotalsAndWrite(t *testing.T) {
	r := &Report{BatchID: "batch-1"}

	sales := r.Entity(model.EntitySales, 0)
	sales.Accept()
	sales.Accept()
	sales.Reject(NewRowError(model.EntitySales, "T9", 4, KindConsistency, "oops"))

	products := r.Entity(model.EntityProduct, 0)
	products.Accept()

	// Entity returns the same report on repeat lookup.
	if r.Entity(model.EntitySales, 0) != sales {
		t.Error("Entity lookup created a duplicate report")
	}

	if r.TotalAccepted() != 3 {
		t.Errorf("TotalAccepted = %d, want 3", r.TotalAccepted())
	}
	if r.TotalRejected() != 1 {
		t.Errorf("TotalRejected = %d, want 1", r.TotalRejected())
	}

	var sb strings.Builder
	r.Write(&sb)
	out := sb.String()
	if !strings.Contains(out, "batch-1") {
		t.Error("Report output missing batch id")
	}
	if !strings.Contains(out, "oops") {
		t.Error("Report output missing row error")
	}
	if !strings.Contains(out, "accepted=3 rejected=1") {
		t.Errorf("Report output missing totals:\n%s", out)
	}
}
