package main

import "github.com/cheerioskun/charbrowser/internal/cmd"

func main() {
	cmd.Execute()
}
