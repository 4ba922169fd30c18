package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repoarchiver/internal"
	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

func injectController() entities.Controller {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var controller entities.Controller
	if err := container.Invoke(func(c entities.Controller) {
		controller = c
	}); err != nil {
		panic(err)
	}

	return controller
}
