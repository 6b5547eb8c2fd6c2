package main

import (
	"errors"
	"log"
	"os"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			log.Printf("[FATAL] %v", err)
		}
		os.Exit(1)
	}
}
