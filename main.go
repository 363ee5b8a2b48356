package main

import (
	"github.com/ipregion/regiond/internal/cmd"
)

func main() {
	cmd.Main()
}
