package main

import "github.com/mohanbhogavarapu07/vsm-backend/cmd"

func main() {
	cmd.Execute()
}
