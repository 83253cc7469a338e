package main

import (
	"github.com/mvp-joe/crossdoc/internal/cli"
)

func main() {
	cli.Execute()
}
