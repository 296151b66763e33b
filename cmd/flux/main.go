package main

import (
	"os"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/cmd/flux/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
