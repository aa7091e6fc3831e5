package main

import "upmgr/cmd"

func main() {
	cmd.Execute()
}
