// main is the entry point of the decider CLI.
package main

import (
	"github.com/huangsam/decider/cmd"
	"github.com/huangsam/decider/internal/contract"
	"github.com/huangsam/decider/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Cannot run decider", err)
	}
}
