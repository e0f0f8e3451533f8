package tokenizer

import (
	"fmt"
	"runtime"
	"strings"
)

type stack *[]uintptr

// getCurrentStack creates a new stack without the last three frames, because they are from the internal calls (e.g. to
// this function) and therefore irrelevant to the function creating the error.
func getCurrentStack() stack {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	var st = pcs[0:n]
	return &st
}

func getPrintableStackTrace(stack stack) string {
	var sb strings.Builder

	for _, pc := range *stack {
		f := runtime.FuncForPC(pc)
		file, line := f.FileLine(pc)
		sb.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", f.Name(), file, line))
	}

	return sb.String()
}

// InvalidJoinInstructionsError is returned when a join is missing its "from" or "on" part or when the "on" part has a
// shape that can't be turned into column pairs.
type InvalidJoinInstructionsError struct {
	Message string `json:"message"`
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
	stack   stack
}

func InvalidJoinInstructions(keyword string, reason string) *InvalidJoinInstructionsError {
	return &InvalidJoinInstructionsError{
		Message: fmt.Sprintf("Invalid join instructions for '%s': %s", keyword, reason),
		Keyword: keyword,
		Reason:  reason,
		stack:   getCurrentStack(),
	}
}

func (e *InvalidJoinInstructionsError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		fmt.Fprintf(s, "%s\n%s", e.Error(), getPrintableStackTrace(e.stack))
	case 's':
		fmt.Fprintf(s, "%s", e.Error())
	}
}

func (e *InvalidJoinInstructionsError) Error() string {
	return e.Message
}

// MaxDepthExceededError is returned when the criteria document is nested deeper than allowed.
type MaxDepthExceededError struct {
	Message  string `json:"message"`
	Key      string `json:"key"`
	MaxDepth int    `json:"max-depth"`
	stack    stack
}

func MaxDepthExceeded(key string, maxDepth int) *MaxDepthExceededError {
	return &MaxDepthExceededError{
		Message:  fmt.Sprintf("Criteria nested too deep: Key '%s' exceeds the maximum depth of %d.", key, maxDepth),
		Key:      key,
		MaxDepth: maxDepth,
		stack:    getCurrentStack(),
	}
}

func (e *MaxDepthExceededError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		fmt.Fprintf(s, "%s\n%s", e.Error(), getPrintableStackTrace(e.stack))
	case 's':
		fmt.Fprintf(s, "%s", e.Error())
	}
}

func (e *MaxDepthExceededError) Error() string {
	return e.Message
}

// InvalidClauseError is only returned in strict mode for clauses that would otherwise produce fewer tokens than usual,
// e.g. a "from" object without "schema" and "table".
type InvalidClauseError struct {
	Message string `json:"message"`
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
	stack   stack
}

func InvalidClause(keyword string, reason string) *InvalidClauseError {
	return &InvalidClauseError{
		Message: fmt.Sprintf("Invalid '%s' clause: %s", keyword, reason),
		Keyword: keyword,
		Reason:  reason,
		stack:   getCurrentStack(),
	}
}

func (e *InvalidClauseError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		fmt.Fprintf(s, "%s\n%s", e.Error(), getPrintableStackTrace(e.stack))
	case 's':
		fmt.Fprintf(s, "%s", e.Error())
	}
}

func (e *InvalidClauseError) Error() string {
	return e.Message
}
