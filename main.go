package main

import (
	"log"

	"github.com/courtflow/courtflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
