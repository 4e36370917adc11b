package main

import (
	"os"

	"github.com/vitormoschetta/go-askchat/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
