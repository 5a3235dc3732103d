package main

import "github.com/nrminor/py-refman/internal/cli"

func main() {
	cli.Execute()
}
