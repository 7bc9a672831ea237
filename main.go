package main

import "picks/cmd"

func main() {
	cmd.Execute()
}
