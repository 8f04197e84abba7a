package main

import (
	"github.com/ValentinKolb/gFlux/cmd"
)

func main() {
	cmd.Execute()
}
