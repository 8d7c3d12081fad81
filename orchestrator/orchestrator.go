// Package orchestrator drives one judge() call end to end: resolve the
// toolchain, compile once, run each test case, check its output, and
// aggregate the per-case verdicts into a JudgeResult. It owns the
// Workspace's lifetime.
//
// Grounded on original_source/src/judge/mod.rs's Judge::judge_all and
// nslaughter-codecourt/judging-service/service.JudgingService.judgeSubmission.
package orchestrator

import (
	"context"
	"time"

	"github.com/codecourt/judge-engine/checker"
	"github.com/codecourt/judge-engine/compiler"
	"github.com/codecourt/judge-engine/model"
	"github.com/codecourt/judge-engine/supervisor"
	"github.com/codecourt/judge-engine/toolchain"
	"github.com/codecourt/judge-engine/workspace"
)

// MemoryLimitPolicy controls whether observed peak RSS that exceeds the
// submission's configured memory limit overrides a case's verdict to
// MemoryLimitExceeded. spec.md §4.4/§9 leaves this as an open question;
// this implementation enables it by default (see DESIGN.md).
type MemoryLimitPolicy int

const (
	// MemoryLimitEnforced overrides a case's verdict when observed peak
	// RSS exceeds the submission's memory limit.
	MemoryLimitEnforced MemoryLimitPolicy = iota
	// MemoryLimitObservedOnly records peak RSS but never overrides a
	// verdict because of it, matching the teacher's original omission.
	MemoryLimitObservedOnly
)

// Orchestrator judges submissions against a fixed workspace root and
// memory-limit policy.
type Orchestrator struct {
	WorkspaceRoot string
	MemoryPolicy  MemoryLimitPolicy
}

// New returns an Orchestrator rooted at workspaceRoot with the memory
// limit policy enforced.
func New(workspaceRoot string) *Orchestrator {
	return &Orchestrator{WorkspaceRoot: workspaceRoot, MemoryPolicy: MemoryLimitEnforced}
}

// Judge runs spec.md §4.5's algorithm against sub and returns the
// assembled JudgeResult. It has no error return: every failure mode is
// represented in the returned JudgeResult's Verdict, matching
// the source's Result<JudgeResult> that is always Ok outside of
// infrastructure failure.
func (o *Orchestrator) Judge(ctx context.Context, sub *model.Submission) *model.JudgeResult {
	result := &model.JudgeResult{SubmissionID: sub.ID, JudgedAt: time.Now()}

	spec, err := toolchain.Resolve(sub.Language)
	if err != nil {
		result.Verdict = model.VerdictSystemError
		result.ErrorMessage = err.Error()
		return result
	}

	ws, err := workspace.New(o.WorkspaceRoot)
	if err != nil {
		result.Verdict = model.VerdictSystemError
		result.ErrorMessage = err.Error()
		return result
	}
	defer ws.Close()

	if err := compiler.Compile(ctx, spec, sub.Source, ws); err != nil {
		switch e := err.(type) {
		case *compiler.CompilationError:
			result.Verdict = model.VerdictCompilationError
			result.ErrorMessage = e.Stderr
		case *compiler.SystemError:
			result.Verdict = model.VerdictSystemError
			result.ErrorMessage = e.Message
		default:
			result.Verdict = model.VerdictSystemError
			result.ErrorMessage = err.Error()
		}
		return result
	}

	runCmd := spec.RunCmd

	var maxTime time.Duration
	var maxMemory int64
	final := model.VerdictAccepted
	caseResults := make([]model.CaseResult, len(sub.Cases))

	for i, tc := range sub.Cases {
		cr := o.runCase(ctx, runCmd, ws, i, tc, sub.TimeLimit, sub.MemoryLimit)
		caseResults[i] = cr

		if cr.TimeUsed > maxTime {
			maxTime = cr.TimeUsed
		}
		if cr.MemoryUsed > maxMemory {
			maxMemory = cr.MemoryUsed
		}
		if cr.Verdict.Precedes(final) {
			final = cr.Verdict
		}
	}

	result.Verdict = final
	result.TimeUsed = maxTime
	result.TimeUsedMs = float64(maxTime.Microseconds()) / 1000.0
	result.MemoryUsed = maxMemory
	result.MemoryUsedKB = round2(float64(maxMemory) / 1024.0)
	result.CaseResults = caseResults
	return result
}

func (o *Orchestrator) runCase(ctx context.Context, runCmd []string, ws *workspace.Workspace, idx int, tc model.TestCase, timeLimit time.Duration, memoryLimit int64) model.CaseResult {
	cr := model.CaseResult{CaseID: idx}

	res, err := supervisor.Run(ctx, runCmd, ws.Dir, tc.Input, timeLimit)
	if err != nil {
		switch e := err.(type) {
		case *supervisor.TimeLimitError:
			cr.Verdict = model.VerdictTimeLimitExceeded
			cr.TimeUsed = minDuration(e.Elapsed, timeLimit)
			cr.MemoryUsed = e.PeakMemory
		case *supervisor.RuntimeErr:
			cr.Verdict = model.VerdictRuntimeError
			cr.ActualOutput = e.Stderr
			cr.TimeUsed = e.Elapsed
			cr.MemoryUsed = e.PeakMemory
		default:
			cr.Verdict = model.VerdictRuntimeError
			cr.ActualOutput = err.Error()
		}
	} else {
		cr.TimeUsed = res.Elapsed
		cr.MemoryUsed = res.PeakMemory
		cr.ActualOutput = res.Stdout
		cr.Verdict = checker.Check(tc.ExpectedOutput, res.Stdout)

		if o.MemoryPolicy == MemoryLimitEnforced && memoryLimit > 0 && res.PeakMemory > memoryLimit {
			cr.Verdict = model.VerdictMemoryLimitExceeded
		}
	}

	cr.TimeUsedMs = float64(cr.TimeUsed.Microseconds()) / 1000.0
	cr.MemoryUsedKB = round2(float64(cr.MemoryUsed) / 1024.0)
	return cr
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
