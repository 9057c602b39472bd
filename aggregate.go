package classlint

import "sort"

// Report is one unit's outcome as handed to the aggregator: either the
// violations found (possibly none) or a failure diagnostic, tagged with the
// unit's stable input index assigned at dispatch time.
type Report struct {
	Index      int
	Violations []Violation
	Failure    *Diagnostic
}

// Summary is the pass/fail rollup of one run.
type Summary struct {
	ErrorCount   int            `json:"errors"`
	WarningCount int            `json:"warnings"`
	FailureCount int            `json:"failures"`
	PerRule      map[string]int `json:"per_rule"`
}

// Aggregator collects reports from concurrent workers through a single
// consumer goroutine, so workers never share mutable state. Final ordering
// comes from the input index carried on each report, not arrival order:
// parallel and sequential runs produce identical output.
type Aggregator struct {
	reports chan Report
	done    chan struct{}

	// written only by the consumer goroutine, read after Close
	all      []Report
	deferred []Violation
}

// NewAggregator starts an aggregator ready to receive reports.
func NewAggregator() *Aggregator {
	a := &Aggregator{
		reports: make(chan Report, 64),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(a.done)
		for r := range a.reports {
			a.all = append(a.all, r)
		}
	}()
	return a
}

// Record hands one report to the aggregator. Safe for concurrent use.
func (a *Aggregator) Record(r Report) {
	a.reports <- r
}

// Close stops accepting reports and waits for the consumer to drain.
// Must be called before any accessor.
func (a *Aggregator) Close() {
	close(a.reports)
	<-a.done
}

// AddDeferred appends second-pass violations that follow all per-unit
// output. Call after Close, before the accessors.
func (a *Aggregator) AddDeferred(violations []Violation) {
	a.deferred = append(a.deferred, violations...)
}

// Violations returns all collected violations in stable order: by input
// index, preserving emission order within a unit, with deferred
// (second-pass) violations at the end. Identical violations from distinct
// inputs stay distinct; there is no deduplication.
func (a *Aggregator) Violations() []Violation {
	sorted := a.sortedReports()
	var out []Violation
	for _, r := range sorted {
		out = append(out, r.Violations...)
	}
	out = append(out, a.deferred...)
	return out
}

// Failures returns the unanalyzable-input diagnostics in input order.
func (a *Aggregator) Failures() []Diagnostic {
	sorted := a.sortedReports()
	var out []Diagnostic
	for _, r := range sorted {
		if r.Failure != nil {
			out = append(out, *r.Failure)
		}
	}
	return out
}

// HasErrors reports whether any collected violation is an error.
func (a *Aggregator) HasErrors() bool {
	for _, v := range a.Violations() {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Summarize rolls up counts by severity and rule. Failures are counted
// alongside, never folded into "no violations found".
func (a *Aggregator) Summarize() Summary {
	s := Summary{PerRule: make(map[string]int)}
	for _, v := range a.Violations() {
		switch v.Severity {
		case SeverityError:
			s.ErrorCount++
		case SeverityWarning:
			s.WarningCount++
		}
		s.PerRule[v.Rule]++
	}
	s.FailureCount = len(a.Failures())
	return s
}

func (a *Aggregator) sortedReports() []Report {
	sorted := make([]Report, len(a.all))
	copy(sorted, a.all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	return sorted
}
