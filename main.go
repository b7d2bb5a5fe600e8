package main

import "spacesavers/cmd"

func main() {
	cmd.Execute()
}
