package main

import "github.com/ryclarke/release-tool/cmd"

func main() {
	cmd.Execute()
}
