package main

import "github.com/oneq-sh/oneq/cmd"

func main() {
	cmd.Execute()
}
