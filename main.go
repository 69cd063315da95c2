package main

import "github.com/naka-gawa/pr-insights/cmd"

func main() {
	cmd.Execute()
}
