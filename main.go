package main

import "github.com/kamusis/sdm-cli/cmd"

func main() {
	cmd.Execute()
}
