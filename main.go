package main

import "github.com/notargets/golattice/cmd"

func main() {
	cmd.Execute()
}
