package main

import (
	"fmt"
	"os"
	"strings"
)

// tristate is the value of an auto|on|off flag such as --color or --ui.
type tristate uint8

const (
	auto tristate = iota
	on
	off
)

var tristateNames = [...]string{auto: "auto", on: "on", off: "off"}

func (s tristate) String() string { return tristateNames[s] }

// parseTristate reads the value of --name. The empty string means auto.
func parseTristate(name, value string) (tristate, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return auto, nil
	}
	for i, n := range tristateNames {
		if n == v {
			return tristate(i), nil //nolint:gosec // G115: i indexes a three-element array.
		}
	}
	return auto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
}

// enabled resolves s, with auto meaning "f is a terminal".
func (s tristate) enabled(f *os.File) bool {
	switch s {
	case on:
		return true
	case off:
		return false
	}
	return isTerminal(f)
}
