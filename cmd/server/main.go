package main

import "notodo/internal/cli"

func main() {
	cli.Execute()
}
