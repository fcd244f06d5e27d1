package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores a device to a sane state, typically a terminal screen
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
	crashOut      io.Writer = os.Stderr
	crashExit               = os.Exit
)

// RegisterCrashTerminal sets the screen to restore before a crash report is printed
func RegisterCrashTerminal(f Finisher) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = f
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()

	// Restore terminal to sane state before printing
	if term != nil {
		term.Fini()
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	GoWith(HandleCrash, fn)
}

// GoWith is Go with an explicit crash handler
func GoWith(handler func(any), fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handler(r)
			}
		}()
		fn()
	}()
}
