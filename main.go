package main

import "github.com/covered-news/covered/cmd"

func main() {
	cmd.Execute()
}
