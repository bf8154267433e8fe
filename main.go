// Package main is the entry point for the stepcalc CLI.
package main

import "github.com/synnheal/stepcalc/cmd"

func main() {
	cmd.Execute()
}
