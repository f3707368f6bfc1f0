package main

import "github.com/user/scengen/cmd"

func main() {
	cmd.Execute()
}
