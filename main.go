package main

import "tasklog/cmd"

func main() {
	cmd.Execute()
}
