package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToolsConfigured is returned at construction time when the
	// effective tool registry is empty.
	ErrNoToolsConfigured = errors.New("no graph analytics tools configured or allowed")

	// ErrNoSelection is returned when neither an explicit tool name nor the
	// active selection strategy could resolve a tool for the question.
	ErrNoSelection = errors.New("could not infer a graph analytics tool for this question")

	// ErrUnknownTool is returned when a resolved tool name is not present in
	// the registry.
	ErrUnknownTool = errors.New("unsupported tool")
)

// ExecutionError wraps a failure from the execution backend with the name of
// the tool that was being called.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool call failed for %q: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
