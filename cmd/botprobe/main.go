package main

import "botprobe/internal/cli"

func main() {
	cli.Execute()
}
