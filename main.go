package main

import "github.com/bunshodo/leakscope/cmd"

func main() {
	cmd.Execute()
}
