package main

import "labelboard/cmd/labelboard-cli/cmd"

func main() {
	cmd.Execute()
}
