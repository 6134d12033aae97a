// cmd/igsim/main.go
package main

import (
	"igsim/internal/app"
	"igsim/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
