package main

import "ytparallel/cmd"

func main() {
	cmd.Execute()
}
