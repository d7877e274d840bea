package main

import "desksweep/cmd/desksweep-cli/cmd"

func main() {
	cmd.Execute()
}
