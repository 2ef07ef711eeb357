package main

import "buildgate/internal/cli"

func main() {
	cli.Execute()
}
