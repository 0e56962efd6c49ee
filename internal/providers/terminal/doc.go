// Package terminal implements the shell's simulated command prompt.
//
// The Interpreter recognizes a small DOS-flavoured vocabulary (help, dir,
// cd, ipconfig, systeminfo, ...). Nothing runs on the host: directory
// listings are canned and system figures come from the device adapter.
// Unknown commands answer with the familiar "is not recognized" message.
package terminal
