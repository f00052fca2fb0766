// cmd/seqfetch/main.go
package main

import (
	"seqfetch/internal/app"
	"seqfetch/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
