package main

import (
	"context"
	"os"

	"github.com/willbeason/fractal-tree/pkg/cli"
	"github.com/willbeason/fractal-tree/pkg/window"
)

func main() {
	ctx := context.Background()

	err := cli.Command(window.Run).ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
