// Package engine provides the Lisp evaluation engine for Casework.
// It wraps zygomys in a sandboxed environment and produces a set of
// constructed fixtures from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/casework/pkg/fixture"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Build is the output of one evaluation: every fixture the source
// constructed, in construction order, with a name index.
type Build struct {
	Fixtures []*fixture.Fixture
	byName   map[string]*fixture.Fixture
}

// NewBuild creates an empty build.
func NewBuild() *Build {
	return &Build{byName: make(map[string]*fixture.Fixture)}
}

// Add appends a fixture, rejecting duplicate names.
func (b *Build) Add(f *fixture.Fixture) error {
	if _, ok := b.byName[f.Name()]; ok {
		return fmt.Errorf("duplicate fixture name %q", f.Name())
	}
	b.Fixtures = append(b.Fixtures, f)
	b.byName[f.Name()] = f
	return nil
}

// Lookup returns the fixture with the given name, or nil.
func (b *Build) Lookup(name string) *fixture.Fixture {
	return b.byName[name]
}

// Engine wraps the zygomys interpreter for Casework evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source code and produces a new Build.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns build + nil errors + nil error
//   - On parse/eval failure: returns nil build + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Build, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		b, evalErrs, err := e.evaluate(source)
		ch <- evalResult{build: b, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Build, []EvalError, error) {
	// Empty source is a valid program that produces an empty build.
	if strings.TrimSpace(source) == "" {
		return NewBuild(), nil, nil
	}

	// Create a fresh sandboxed zygomys environment.
	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	build := NewBuild()
	registerBuiltins(env, build)

	// Load and compile the preprocessed source into bytecode.
	err := env.LoadString(preprocessSource(source))
	if err != nil {
		evalErrs := parseZygomysError(err)
		return nil, evalErrs, nil
	}

	// Execute the compiled bytecode.
	_, err = env.Run()
	if err != nil {
		evalErrs := parseZygomysError(err)
		return nil, evalErrs, nil
	}

	return build, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		detail := strings.TrimSpace(m[2])
		return []EvalError{{
			Line:    line,
			Col:     0,
			Message: detail,
		}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		detail := strings.TrimSpace(m[2])
		return []EvalError{{
			Line:    line,
			Col:     0,
			Message: detail,
		}}
	}

	// Fallback: no line info available.
	return []EvalError{{
		Line:    0,
		Col:     0,
		Message: strings.TrimSpace(msg),
	}}
}
