package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"brewin/interpreter-go/pkg/ast"
	"brewin/interpreter-go/pkg/interpreter"
)

var log = commonlog.GetLogger("brewin.driver")

// RunOptions controls how a suite is executed.
type RunOptions struct {
	// Parallelism bounds concurrently running fixtures; values below one run
	// fixtures sequentially.
	Parallelism int
	Trace       bool
}

// Result records the outcome of one fixture.
type Result struct {
	Fixture  *Fixture
	Passed   bool
	Stdout   []string
	Err      error
	Failure  string
	Duration time.Duration
}

// Report collects fixture results in manifest order.
type Report struct {
	Suite   string
	Results []*Result
}

// Failed returns the results that did not pass.
func (r *Report) Failed() []*Result {
	var failed []*Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Passed reports whether every fixture passed.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// RunSuite executes every fixture in its own interpreter. Fixture failures are
// recorded in the report; the returned error is reserved for cancellation.
func RunSuite(ctx context.Context, suite *Suite, opts RunOptions) (*Report, error) {
	report := &Report{Suite: suite.Name, Results: make([]*Result, len(suite.Fixtures))}
	limit := opts.Parallelism
	if limit < 1 {
		limit = 1
	}
	log.Infof("running suite %s (%d fixtures, parallelism %d)", suite.Name, len(suite.Fixtures), limit)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, fixture := range suite.Fixtures {
		idx, fixture := idx, fixture
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Results[idx] = runFixture(suite, fixture, opts.Trace || suite.Trace)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Infof("suite %s: %d of %d fixtures failed", suite.Name, len(report.Failed()), len(report.Results))
	return report, nil
}

func runFixture(suite *Suite, fixture *Fixture, trace bool) *Result {
	started := time.Now()
	result := &Result{Fixture: fixture}
	defer func() {
		result.Duration = time.Since(started)
		log.Debugf("fixture %s finished in %s (passed=%t)", fixture.Name, result.Duration, result.Passed)
	}()

	program, err := ast.LoadFile(suite.ProgramPath(fixture))
	if err != nil {
		result.Err = err
		result.Failure = fmt.Sprintf("load program: %v", err)
		return result
	}
	host := interpreter.NewBufferHost(fixture.Input...)
	interp := interpreter.New(interpreter.Options{Host: host, Trace: trace})
	result.Err = interp.Run(program)
	result.Stdout = host.Lines()

	if failure := checkError(fixture, result.Err); failure != "" {
		result.Failure = failure
		return result
	}
	want := fixture.Stdout
	if want == nil {
		want = []string{}
	}
	got := result.Stdout
	if got == nil {
		got = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		result.Failure = fmt.Sprintf("stdout mismatch (-want +got):\n%s", diff)
		return result
	}
	result.Passed = true
	return result
}

func checkError(fixture *Fixture, err error) string {
	if !fixture.ExpectsError() {
		if err != nil {
			return fmt.Sprintf("unexpected error: %v", err)
		}
		return ""
	}
	if err == nil {
		return fmt.Sprintf("expected %s, program completed", fixture.Error)
	}
	want, _ := interpreter.ParseErrorKind(fixture.Error)
	got, ok := interpreter.KindOf(err)
	if !ok {
		return fmt.Sprintf("expected %s, got %v", fixture.Error, err)
	}
	if got != want {
		return fmt.Sprintf("expected %s, got %v", want, err)
	}
	return ""
}
