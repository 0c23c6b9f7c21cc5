package main

import (
	"github.com/volumeflow/cvd/pkg/cmd"
)

func main() {
	cmd.Execute()
}
