package main

import "github.com/mttcabral/ride-dispatch-simulator/cmd"

func main() {
	cmd.Execute()
}
