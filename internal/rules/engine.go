// SPDX-License-Identifier: MPL-2.0

package rules

import (
	"context"
	"runtime"
	"sync"
)

type (
	// Outcome is the collected result of one engine run.
	Outcome struct {
		// Results holds one entry per catalog rule, in catalog order,
		// regardless of the order rules actually executed in.
		Results []Result
		// Incomplete is set when the run was cut off before every rule
		// finished. An incomplete run carries no results; reporting a
		// partial pass would misleadingly declare conformance.
		Incomplete bool
	}
)

// Conformant reports whether no evaluated rule found a violation. Skipped
// rules do not count either way.
func (o Outcome) Conformant() bool {
	if o.Incomplete {
		return false
	}
	for _, result := range o.Results {
		if result.Status == StatusViolated {
			return false
		}
	}
	return true
}

// Evaluate runs the full catalog against the snapshot.
func Evaluate(ctx context.Context, c Context) Outcome {
	return EvaluateRules(ctx, c, Catalog())
}

// EvaluateRules runs the given rules against the snapshot on a bounded
// worker pool. Rules are pure functions over an immutable snapshot, so
// execution order is irrelevant; results land in input order. Cancellation
// is whole-run only: if ctx expires before the pool drains, the outcome is
// Incomplete.
func EvaluateRules(ctx context.Context, c Context, ruleSet []Rule) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]Result, len(ruleSet))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := min(len(ruleSet), runtime.NumCPU())
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = evaluateOne(c, ruleSet[i])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range ruleSet {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return Outcome{Incomplete: true}
	}

	if ctx.Err() != nil {
		return Outcome{Incomplete: true}
	}

	return Outcome{Results: results}
}

func evaluateOne(c Context, rule Rule) Result {
	if c.Policy.Disabled[rule.ID] {
		return Result{Rule: rule.ID, Status: StatusSkipped, SkipReason: "disabled by configuration"}
	}

	violations, skipReason := rule.check(c)
	switch {
	case skipReason != "":
		return Result{Rule: rule.ID, Status: StatusSkipped, SkipReason: skipReason}
	case len(violations) > 0:
		return Result{Rule: rule.ID, Status: StatusViolated, Violations: violations}
	default:
		return Result{Rule: rule.ID, Status: StatusPassed}
	}
}
