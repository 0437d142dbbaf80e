// Idiomatic entrypoint for the kdsdiag Cobra CLI; delegates to cmd/kdsdiag/root.go.

package main

import (
	cmd "github.com/irongatelabs/kds-bridge/cmd/kdsdiag"
)

func main() {
	cmd.Execute()
}
