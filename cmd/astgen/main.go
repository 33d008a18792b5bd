package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arvendson/loxwalk/tools"
)

func main() {
	args := os.Args[1:]
	err := tools.GenerateAst(args)
	if err != nil {
		if errors.Is(err, tools.ErrInvalidArgumentList) {
			fmt.Println("Usage: astgen <output dir>")
			os.Exit(64)
		}

		fmt.Println("Error generating AST: ", err.Error())
		os.Exit(1)
	}
}
