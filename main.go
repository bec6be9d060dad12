package main

import "osu-db-tool/cmd"

func main() {
	cmd.Execute()
}
