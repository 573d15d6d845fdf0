package main

import "github.com/OpenTraceLab/OpenTraceFASM/cmd/fasm2bels/cmd"

func main() {
	cmd.Execute()
}
