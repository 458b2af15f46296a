// Package main provides the cinelist command for inspecting, exporting and importing
// lists directly against a profile database.
//
// Usage:
//
//	cinelist lists --email ada@example.com
//	cinelist export <list-id> --email ada@example.com -o list.json
//	cinelist import list.json --email ada@example.com
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
