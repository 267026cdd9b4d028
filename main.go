package main

import "github.com/vetta-dev/vetta/internal/cli"

func main() {
	cli.Execute()
}
