//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func init() {
	ok := enableVT(windows.Handle(os.Stdout.Fd())) && enableVT(windows.Handle(os.Stderr.Fd()))
	pNoCodesDefault, pNoCodes = !ok, !ok
}

// enableVT switches the console behind h to processing escape sequences and reports whether it
// does now. Handles which are not consoles, such as pipes, report false.
func enableVT(h windows.Handle) bool {
	var mode uint32
	if windows.GetConsoleMode(h, &mode) != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
