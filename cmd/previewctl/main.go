package main

import (
	"os"

	"previewd/internal/previewctl"
)

func main() { os.Exit(previewctl.Main()) }
