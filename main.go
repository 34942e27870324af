// Package main is the entry point for the go2json CLI.
package main

import "go2json.dev/pkg/go2json/cmd"

func main() {
	cmd.Execute()
}
