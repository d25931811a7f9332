package main

import (
	"os"

	"github.com/chirpy-labs/arbor/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
