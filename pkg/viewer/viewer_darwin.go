package viewer

const defaultCommand = "open"

var defaultArgs []string
