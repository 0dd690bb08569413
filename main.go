package main

import "github.com/KaramelBytes/csvscope/cmd"

func main() {
	cmd.Execute()
}
