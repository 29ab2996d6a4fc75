//go:build !darwin && !windows

package viewer

const defaultCommand = "xdg-open"

var defaultArgs []string
