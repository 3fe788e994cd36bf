// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// FormatAddressShort returns address in abbreviated "ABCD..WXYZ" format.
// For addresses <= 12 characters, returns unchanged.
func FormatAddressShort(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:4] + ".." + addr[len(addr)-4:]
}

// supportsColor checks if stdout is a terminal that understands ANSI colors
func supportsColor() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) { // #nosec G115 - file descriptors are small integers
		return false
	}
	termEnv := os.Getenv("TERM")
	return termEnv != "" && termEnv != "dumb"
}

// FormatAddressColor renders address in a 256-color palette entry (a network's
// color, e.g. "198"). Plain text is returned when stdout is not a color
// terminal or color is empty.
func FormatAddressColor(address, color string) string {
	if color == "" || !supportsColor() {
		return address
	}
	return fmt.Sprintf("\033[38;5;%sm%s\033[0m", color, address)
}
