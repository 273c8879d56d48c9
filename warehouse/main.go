package main

import (
	"github.com/go-arrower/warehouse/warehouse/cmd"
)

func main() {
	cmd.Execute()
}
