package main

import (
	"os"

	docqacmder "github.com/docfold/docqa/cmd/docqa"
)

func main() {
	cmd := docqacmder.NewDocqaCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
