// Command scriptbox manages a local library of saved text snippets.
package main

import (
	"os"

	"github.com/mesh-intelligence/scriptbox/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
