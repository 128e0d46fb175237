package main

import (
	"micelio/config"
	"micelio/helper"
	"micelio/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

var directions = map[string]func(*config.Config) error{
	helper.ActionUp:     helper.Up,
	helper.ActionDown:   helper.Down,
	helper.ActionDrop:   helper.Drop,
	helper.ActionStepUp: helper.StepUp,
}

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	run, ok := directions[os.Args[1]]
	if !ok {
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
