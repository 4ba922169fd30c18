package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewArchiveController); err != nil {
		return err
	}
	if err := container.Provide(func(c *ArchiveController) entities.Controller { return c }); err != nil {
		return err
	}

	return nil
}
