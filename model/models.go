// Package model defines the data types shared across the judging engine:
// the submission request, its test cases, and the verdicts produced by
// judging it.
package model

import "time"

// Language identifies a toolchain recognized by the Toolchain Registry.
type Language string

// Supported programming languages.
const (
	LanguageC      Language = "c"
	LanguageCPP    Language = "cpp"
	LanguagePython Language = "python"
	LanguageJava   Language = "java"
	LanguageGo     Language = "go"
)

// Verdict is the tagged outcome of a case or a whole submission.
type Verdict string

// Recognized verdicts. The first six are listed in the precedence order
// used to aggregate them; CompilationError short-circuits before
// aggregation and is listed last.
const (
	VerdictSystemError         Verdict = "system_error"
	VerdictRuntimeError        Verdict = "runtime_error"
	VerdictMemoryLimitExceeded Verdict = "memory_limit_exceeded"
	VerdictTimeLimitExceeded   Verdict = "time_limit_exceeded"
	VerdictWrongAnswer         Verdict = "wrong_answer"
	VerdictAccepted            Verdict = "accepted"
	VerdictCompilationError    Verdict = "compilation_error"
)

// precedence maps a verdict to its rank in the aggregation order. Lower
// rank wins. CompilationError short-circuits before aggregation runs and
// is not part of this table.
var precedence = map[Verdict]int{
	VerdictSystemError:         0,
	VerdictRuntimeError:        1,
	VerdictMemoryLimitExceeded: 2,
	VerdictTimeLimitExceeded:   3,
	VerdictWrongAnswer:         4,
	VerdictAccepted:            5,
}

// Precedes reports whether v should win over other when aggregating.
func (v Verdict) Precedes(other Verdict) bool {
	return precedence[v] < precedence[other]
}

// TestCase is one input/expected-output pair. Its identity is its
// zero-based index within a Submission.
type TestCase struct {
	ID             string `json:"id,omitempty"`
	ProblemID      string `json:"problem_id,omitempty"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden,omitempty"`
}

// Submission is the validated request handed to the orchestrator.
type Submission struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id,omitempty"`
	ProblemID     string        `json:"problem_id,omitempty"`
	Language      Language      `json:"language"`
	Source        string        `json:"source_code"`
	TimeLimit     time.Duration `json:"-"`
	MemoryLimit   int64         `json:"-"`
	TimeLimitMs   int64         `json:"time_limit_ms"`
	MemoryLimitMB int64         `json:"memory_limit_mb"`
	Cases         []TestCase    `json:"test_cases"`
	SubmittedAt   time.Time     `json:"submitted_at,omitempty"`
}

// Normalize derives the internal Duration/byte fields from the wire-level
// millisecond/megabyte fields. Called once by the adapter that decoded
// the submission off the wire.
func (s *Submission) Normalize() {
	s.TimeLimit = time.Duration(s.TimeLimitMs) * time.Millisecond
	s.MemoryLimit = s.MemoryLimitMB * 1024 * 1024
}

// Validate checks the invariants spec.md §3 requires before judging.
// It does not check that Language is registered; that is the Toolchain
// Registry's job so the error can carry a consistent message.
func (s *Submission) Validate() error {
	if s.Language == "" {
		return errEmpty("language")
	}
	if s.Source == "" {
		return errEmpty("source")
	}
	if s.TimeLimitMs <= 0 {
		return errEmpty("time_limit")
	}
	if s.MemoryLimitMB <= 0 {
		return errEmpty("memory_limit")
	}
	if len(s.Cases) == 0 {
		return errEmpty("test_cases")
	}
	return nil
}

func errEmpty(field string) error {
	return &ValidationError{Field: field}
}

// ValidationError reports that a Submission failed validation before
// reaching the orchestrator. The Kafka adapter in package service records
// it as a SystemError result on the result topic.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + e.Field + " is required"
}

// CaseResult is the outcome of judging one TestCase.
type CaseResult struct {
	CaseID       int           `json:"test_case_id"`
	Verdict      Verdict       `json:"status"`
	TimeUsed     time.Duration `json:"-"`
	TimeUsedMs   float64       `json:"time_used_ms"`
	MemoryUsed   int64         `json:"-"`
	MemoryUsedKB float64       `json:"memory_used_kb"`
	ActualOutput string        `json:"actual_output"`
}

// JudgeResult is the aggregate outcome of judging a Submission.
type JudgeResult struct {
	SubmissionID string        `json:"submission_id,omitempty"`
	Verdict      Verdict       `json:"status"`
	TimeUsed     time.Duration `json:"-"`
	TimeUsedMs   float64       `json:"time_used_ms"`
	MemoryUsed   int64         `json:"-"`
	MemoryUsedKB float64       `json:"memory_used_kb"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CaseResults  []CaseResult  `json:"test_case_results"`
	JudgedAt     time.Time     `json:"judged_at,omitempty"`
}
