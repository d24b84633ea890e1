package main

import "github.com/Alijeyrad/glycare/cmd"

func main() {
	cmd.Execute()
}
