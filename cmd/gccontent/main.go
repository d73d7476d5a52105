// cmd/gccontent/main.go
package main

import (
	"telogc/internal/appshell"
	"telogc/internal/gcapp"
)

func main() {
	appshell.Main(gcapp.RunContext)
}
