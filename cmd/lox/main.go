package main

import (
	"context"
	"os"

	"go.followtheprocess.codes/lox/internal/cmd"
	"go.followtheprocess.codes/msg"
)

func main() {
	ctx := context.Background()

	root, err := cmd.Build(ctx)
	if err != nil {
		msg.Error("%s", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		msg.Error("%s", err)
		os.Exit(1)
	}
}
