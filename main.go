package main

import (
	"github.com/Sena-ops/compliguard/cmd"
)

func main() {
	cmd.Execute()
}
