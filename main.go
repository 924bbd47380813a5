package main

import "github.com/blockblu-io/rewards-verifier/internal/cmd"

func main() {
	cmd.Run()
}
