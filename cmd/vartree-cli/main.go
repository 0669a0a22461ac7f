package main

import "vartree/cmd/vartree-cli/cmd"

func main() {
	cmd.Execute()
}
