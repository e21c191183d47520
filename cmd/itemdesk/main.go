// Command itemdesk runs the local item client and manages its stored session.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultOpener).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
