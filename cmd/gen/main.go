package main

import (
	"LeadDial/internal/repository"
	"LeadDial/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	repository.RunGenerate()
}
