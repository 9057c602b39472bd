package classlint

import (
	"context"
	"runtime"
	"sync"
)

// Input is one independent unit of analysis: a selector from a stylesheet
// or an element class list from markup. Exactly one of Selector and
// Element is set. A front-end that failed to parse a unit delivers it with
// Err set so the failure is counted instead of vanishing.
type Input struct {
	Selector *RawSelector
	Context  NestingContext
	// Declarations of the selector's rule, used by the reuse pass.
	Declarations map[string]string

	Element  []string
	Location Location

	Err error
}

// RunOptions tunes the runner.
type RunOptions struct {
	// Workers is the pool size. Zero means GOMAXPROCS; one gives a fully
	// sequential run, which produces identical output.
	Workers int
}

// Result is the outcome of one full run.
type Result struct {
	Violations []Violation
	Failures   []Diagnostic
	Summary    Summary
}

// HasErrors reports whether the run found any error-severity violation.
func (r *Result) HasErrors() bool {
	return r.Summary.ErrorCount > 0
}

// Run analyzes all inputs against the convention. Per-unit checks run on a
// worker pool; the cross-selector reuse rule runs as a second pass once
// every worker has finished and the private-usage indexes are merged.
//
// The convention is validated first: an invalid configuration aborts the
// run with a ConfigError rather than producing misleading clean output.
// Cancelling the context stops dispatching new work; units already
// dispatched complete and partial results are discarded by the caller.
func Run(ctx context.Context, inputs []Input, conv *Convention, opts RunOptions) (*Result, error) {
	if diags := conv.Validate(); len(diags) > 0 {
		return nil, &ConfigError{Diagnostics: diags}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(inputs) && len(inputs) > 0 {
		workers = len(inputs)
	}

	agg := NewAggregator()
	jobs := make(chan int)
	indexes := make([]*PrivateUsageIndex, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			idx := NewPrivateUsageIndex()
			indexes[w] = idx
			for i := range jobs {
				agg.Record(analyzeInput(i, inputs[i], conv, idx))
			}
		}(w)
	}

dispatch:
	for i := range inputs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	agg.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := NewPrivateUsageIndex()
	for _, idx := range indexes {
		if idx != nil {
			merged.Merge(idx)
		}
	}
	agg.AddDeferred(merged.Violations(conv))

	return &Result{
		Violations: agg.Violations(),
		Failures:   agg.Failures(),
		Summary:    agg.Summarize(),
	}, nil
}

// analyzeInput evaluates one unit: rule violations on success, a failure
// diagnostic otherwise. Rules never abort the run; a bad unit is reported
// and the rest continue.
func analyzeInput(index int, in Input, conv *Convention, idx *PrivateUsageIndex) Report {
	fail := func(detail string) Report {
		return Report{Index: index, Failure: &Diagnostic{
			Kind:     DiagUnanalyzableInput,
			Location: in.Location,
			Detail:   detail,
		}}
	}

	if in.Err != nil {
		return fail(in.Err.Error())
	}

	switch {
	case in.Selector != nil:
		path, err := Analyze(*in.Selector, in.Context, conv)
		if err != nil {
			return fail(err.Error())
		}
		CollectPrivateUsages(path, in.Declarations, index, idx)
		return Report{Index: index, Violations: RunRules(path, conv)}

	case in.Element != nil:
		return Report{Index: index, Violations: CheckElement(in.Element, in.Location, conv)}
	}

	return fail("input carries neither a selector nor an element")
}
