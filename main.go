package main

import (
	"os"
	"os/signal"

	"github.com/praktik-cli/praktik/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Logging is silent unless DEBUG_PRAKTIK is set; the CLI output itself
	// goes through the commands, not the logger.
	if os.Getenv("DEBUG_PRAKTIK") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	go listenForInterrupt(stopChan)

	cmd.Execute()
}

// listenForInterrupt exits the process on the first interrupt signal.
func listenForInterrupt(stopChan chan os.Signal) {
	<-stopChan
	log.Fatal().Msg("Interrupt signal received. Exiting...")
}
