// Package main provides ringy, an interactive shell over a ring heap.
//
// Usage:
//
//	ringy [-n capacity] [--order min|max] [-c config] [--no-history]
//
// Commands are read from the terminal with line editing, or one per line
// from stdin when it is not a terminal:
//
//	printf 'push 5 a\npush 3 b\npush 8 c\npush 1 d\ndrain\n' | ringy -n 3
package main

import (
	"os"
	"strings"

	"github.com/calvinalkan/ringheap/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
