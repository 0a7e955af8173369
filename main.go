package main

import "github.com/statisticsnorway/dapla-republish/cmd"

func main() {
	// cmd.Execute initializes the Cobra root command, which handles parsing
	// arguments and flags and dispatching to the trigger subcommands.
	cmd.Execute()
}
