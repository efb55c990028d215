package main

import "github.com/maxvaer/urlcheck/cmd"

func main() {
	cmd.Execute()
}
