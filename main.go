package main

import (
	"os"

	"github.com/yusufdanis/hidden-character-detector/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
