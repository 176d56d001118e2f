package main

import (
	"github.com/initkit/sysvgen/cmd"
)

func main() {
	cmd.Execute()
}
