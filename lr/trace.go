package lr

import (
	"fmt"
	"strings"
)

// StepKind tells what a parser did in a single step.
type StepKind int

// Step kinds of the LL(1) driver (Match … Pop) and the LR(1) driver (Shift … Accept).
// Both drivers use ErrorStep for fatal errors.
const (
	MatchStep   StepKind = iota // LL(1): terminal on stack matches input
	PredictStep                 // LL(1): non-terminal replaced by a rule
	SkipStep                    // LL(1) recovery: input symbol skipped
	PopStep                     // LL(1) recovery: stack symbol popped
	ShiftStep                   // LR(1): input symbol shifted
	ReduceStep                  // LR(1): handle reduced
	AcceptStep                  // LR(1): input accepted
	ErrorStep                   // fatal error
)

var stepKindNames = []string{"match", "predict", "skip", "pop", "shift", "reduce", "accept", "error"}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return fmt.Sprintf("step kind %d", int(k))
}

// Step records a parser configuration and the action taken from it.
//
// For the LL(1) driver, Prefix holds the input matched so far and Stack the
// parser stack, top first. For the LR(1) driver, Prefix holds the symbol stack
// and Stack the state stack, both bottom first. Input is the remaining input,
// always ending in $.
type Step struct {
	Kind       StepKind
	Prefix     string
	Stack      string
	Input      string
	Action     string
	Production Production // for predict and reduce steps
}

func (s Step) String() string {
	return fmt.Sprintf("%-20s | %-20s | %-20s | %s", s.Prefix, s.Stack, s.Input, s.Action)
}

// Trace is the list of all steps of a parse.
type Trace []Step

// Count returns the number of steps of kind k.
func (t Trace) Count(k StepKind) int {
	cnt := 0
	for _, s := range t {
		if s.Kind == k {
			cnt++
		}
	}
	return cnt
}

// Last returns the final step of a trace.
func (t Trace) Last() (Step, bool) {
	if len(t) == 0 {
		return Step{}, false
	}
	return t[len(t)-1], true
}

// Productions returns the productions of all steps of kind k, in order.
// For a successful LR(1) parse and k = ReduceStep, this is the reverse
// rightmost derivation.
func (t Trace) Productions(k StepKind) []Production {
	var prods []Production
	for _, s := range t {
		if s.Kind == k {
			prods = append(prods, s.Production)
		}
	}
	return prods
}

func (t Trace) String() string {
	var b strings.Builder
	for _, s := range t {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Outcome is the result of a single parser step.
type Outcome int

// Outcomes of parser steps.
const (
	Continue  Outcome = iota // parse is not finished
	Accept                   // input accepted
	Recovered                // input consumed, but with error recovery
	Abort                    // fatal error, see accompanying error
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Accept:
		return "accept"
	case Recovered:
		return "recovered"
	}
	return "abort"
}
