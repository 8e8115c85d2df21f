// main is the entry point for the snpfiltr CLI.
package main

import (
	"github.com/cran/SNPfiltR/cmd"
	"github.com/cran/SNPfiltR/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
