package main

import "github.com/oshokin/version-props/cmd/version-props/cmd"

func main() {
	cmd.Execute()
}
