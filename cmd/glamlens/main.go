package main

import "github.com/glamlens/glamlens/internal/cli"

func main() {
	cli.Execute()
}
