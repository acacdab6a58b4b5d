// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is an error dressed for the terminal: it names the
// operation that failed, the resource it failed on, and what the user
// can try next. Build one through ErrorContext:
//
//	return issue.NewErrorContext().
//		WithOperation("decode container").
//		WithResource(path).
//		WithSuggestion("Run 'cfgarc info " + path + "' to inspect the header").
//		Wrap(err).
//		BuildError()
type ActionableError struct {
	// Operation is the verb phrase that failed, e.g. "decode container".
	Operation string

	// Resource is the file or entity involved. Optional.
	Resource string

	// Suggestions are next steps shown under the message. Optional.
	Suggestions []string

	// Cause is the underlying error. Optional.
	Cause error
}

// Error renders the one-line form: failed to <operation>[: <resource>][: <cause>].
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the multi-line form: the Error line, a bulleted
// suggestion list, and, when verbose is set, the numbered cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteByte('\n')
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
		}
	}

	return b.String()
}

// ErrorContext accumulates the pieces of an ActionableError. A context
// can be prepared up front and completed at the failure site with Wrap
// and Build.
type ErrorContext struct {
	operation   string
	resource    string
	suggestions []string
	cause       error
}

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation sets the verb phrase. Required; Build refuses to
// construct an error without one.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the file or entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one next step.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions appends several next steps at once.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// Wrap records the underlying error as the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build constructs the ActionableError, or nil when no operation was
// set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// BuildError is Build typed as error for direct use in returns. A nil
// *ActionableError comes back as a true nil error, not a typed nil.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
