package cmd

import (
	"fmt"
	"os"
)

func handleProgramError(err error) {
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}
