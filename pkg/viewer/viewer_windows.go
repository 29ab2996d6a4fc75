package viewer

// rundll32 hands the file to the shell's registered handler without a
// console window.
const defaultCommand = "rundll32"

var defaultArgs = []string{"url.dll,FileProtocolHandler"}
