// cmd/trftelo/main.go
package main

import (
	"telogc/internal/appshell"
	"telogc/internal/teloapp"
)

func main() {
	appshell.Main(teloapp.RunContext)
}
