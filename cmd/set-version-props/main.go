package main

import "github.com/oshokin/version-props/cmd/set-version-props/cmd"

func main() {
	cmd.Execute()
}
