package main

import (
	"github.com/peoplepulse/peoplepulse/cmd"
	"github.com/peoplepulse/peoplepulse/pkg/logger"
)

func main() {
	logger.Init("debug", "text")
	cmd.Execute()
}
