// Command gxx is a stand-in for g++ that only answers --version. Build it as
// g++ and put it on PATH to exercise compiler detection without a toolchain.
package main

import (
	"os"

	"github.com/jcchavezs/fakecc"
)

func main() {
	os.Exit(fakecc.Run(os.Args[1:], os.Stdout, os.Stderr))
}
