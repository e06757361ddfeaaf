package main

import "github.com/khrees2412/cvforge/cmd"

func main() {
	cmd.Execute()
}
