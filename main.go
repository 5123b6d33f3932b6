package main

import "github.com/weft-term/weftctl/cmd"

func main() {
	cmd.Execute()
}
