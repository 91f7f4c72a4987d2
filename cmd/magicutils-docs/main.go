package main

import "github.com/theroer/magicutils-docs/cmd/magicutils-docs/cmd"

func main() {
	cmd.Execute()
}
