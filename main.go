package main

import "github.com/mhrbek/facetone/cmd"

func main() {
	cmd.Execute()
}
