package main

import "github.com/greboid/termplan/cmd"

func main() {
	cmd.Execute()
}
