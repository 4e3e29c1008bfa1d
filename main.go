package main

import (
	"github.com/parthalab/krakensync/cmd"
	"github.com/parthalab/krakensync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
