package main

import "github.com/mpapenbr/rally-championship/cmd"

func main() {
	cmd.Execute()
}
