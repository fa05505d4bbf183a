//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package validate

import (
	"fmt"
	"io"
	"time"

	"github.com/salesdw/salesdw/internal/model"
)

// EntityReport summarizes one entity's load: totals and the collected
// row errors. The error list may be capped; Rejected always reflects
// the true count.
type EntityReport struct {
	Entity    model.Entity
	Total     int
	Accepted  int
	Rejected  int
	Errors    []*RowError
	maxErrors int
}

// NewEntityReport creates a report for one entity. maxErrors caps the
// retained error list (0 = unlimited).
func NewEntityReport(entity model.Entity, maxErrors int) *EntityReport {
	return &EntityReport{Entity: entity, maxErrors: maxErrors}
}

// Accept counts an accepted row.
func (r *EntityReport) Accept() {
	r.Total++
	r.Accepted++
}

// Reject counts a rejected row and retains its errors up to the cap.
func (r *EntityReport) Reject(errs ...*RowError) {
	r.Total++
	r.Rejected++
	for _, e := range errs {
		if r.maxErrors > 0 && len(r.Errors) >= r.maxErrors {
			return
		}
		r.Errors = append(r.Errors, e)
	}
}

// Report is the outcome of one load batch across all entities.
type Report struct {
	BatchID   string
	StartedAt time.Time
	Duration  time.Duration
	Entities  []*EntityReport
}

// Entity returns the report for the named entity, creating it if needed.
func (r *Report) Entity(entity model.Entity, maxErrors int) *EntityReport {
	for _, er := range r.Entities {
		if er.Entity == entity {
			return er
		}
	}
	er := NewEntityReport(entity, maxErrors)
	r.Entities = append(r.Entities, er)
	return er
}

// TotalAccepted sums accepted rows across entities.
func (r *Report) TotalAccepted() int {
	n := 0
	for _, er := range r.Entities {
		n += er.Accepted
	}
	return n
}

// TotalRejected sums rejected rows across entities.
func (r *Report) TotalRejected() int {
	n := 0
	for _, er := range r.Entities {
		n += er.Rejected
	}
	return n
}

// Write renders the report as text.
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "Load batch %s (%s)\n", r.BatchID, r.Duration.Round(time.Millisecond))
	for _, er := range r.Entities {
		fmt.Fprintf(w, "  %-10s total=%d accepted=%d rejected=%d\n",
			er.Entity, er.Total, er.Accepted, er.Rejected)
		for _, e := range er.Errors {
			fmt.Fprintf(w, "    - %s\n", e.Error())
		}
		if er.Rejected > len(er.Errors) {
			fmt.Fprintf(w, "    ... %d further rejections not shown\n",
				er.Rejected-len(er.Errors))
		}
	}
	fmt.Fprintf(w, "  total accepted=%d rejected=%d\n",
		r.TotalAccepted(), r.TotalRejected())
}
