package main

import "github.com/farzadkfc/cafetill/cmd"

func main() {
	cmd.Execute()
}
