package main

import "github.com/volleyclip/clipper/cmd"

func main() {
	cmd.Execute()
}
