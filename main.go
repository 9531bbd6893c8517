package main

import "pixlift/cmd"

func main() {
	cmd.Execute()
}
