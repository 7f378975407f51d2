package main

import "github.com/feyli/arctrace/cmd"

func main() {
	cmd.Execute()
}
