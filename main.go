// Package main is the entry point for the dgkit application
package main

import (
	"github.com/drumgizmo-tools/dgkit/cmd"
)

func main() {
	cmd.Execute()
}
