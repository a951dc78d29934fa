// Command memfacadectl inspects and edits a memfacade cache pool from the shell.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // optional .env with MEMFACADE_* settings

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
