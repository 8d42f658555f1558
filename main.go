package main

import (
	"os"

	"github.com/groupgrep/groupgrep/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
