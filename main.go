package main

import (
	"os"

	"github.com/weatherchat/weatherchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
