// Package toolcheck resolves the external executables the pipeline needs.
package toolcheck

import (
	"os/exec"
	"strings"
)

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Checker verifies tools are resolvable. It only inspects, it never runs
// anything.
type Checker struct {
	lookPath LookPathFunc
	paths    map[string]string
}

// Option configura el Checker.
type Option func(*Checker)

// WithLookPath replaces exec.LookPath, mostly for tests.
func WithLookPath(fn LookPathFunc) Option {
	return func(c *Checker) {
		if fn != nil {
			c.lookPath = fn
		}
	}
}

// WithToolPaths maps tool names to the binary that should be resolved
// instead of the bare name.
func WithToolPaths(paths map[string]string) Option {
	return func(c *Checker) {
		for k, v := range paths {
			c.paths[k] = v
		}
	}
}

// New creates a Checker backed by exec.LookPath.
func New(opts ...Option) *Checker {
	c := &Checker{
		lookPath: exec.LookPath,
		paths:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns what will be looked up for name.
func (c *Checker) Binary(name string) string {
	if p := strings.TrimSpace(c.paths[name]); p != "" {
		return p
	}
	return name
}

// IsAvailable reports whether name resolves.
func (c *Checker) IsAvailable(name string) bool {
	_, err := c.lookPath(c.Binary(name))
	return err == nil
}

// Check returns the names that could not be resolved, in input order.
func (c *Checker) Check(names []string) []string {
	missing := []string{}
	for _, name := range names {
		if !c.IsAvailable(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
