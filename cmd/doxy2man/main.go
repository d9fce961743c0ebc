package main

import "doxy2man/internal/cli"

func main() {
	cli.Execute()
}
