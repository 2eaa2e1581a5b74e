package main

import "github.com/eng618/driftstack-engine/cmd"

func main() {
	cmd.Execute()
}
