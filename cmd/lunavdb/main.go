// Command lunavdb builds, queries and edits index dumps on the local filesystem.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
