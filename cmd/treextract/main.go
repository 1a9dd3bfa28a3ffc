// cmd/treextract/main.go
package main

import (
	"treextract/internal/app"
	"treextract/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
