package main

import "github.com/sambabib/ncu-helper/cmd"

func main() {
	cmd.Execute()
}
