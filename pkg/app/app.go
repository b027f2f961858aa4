package app

import (
	"context"
	"errors"

	"github.com/oklog/run"
)

type App struct {
	services []Service
	runner   *run.Group
}

func NewApp() *App {
	return &App{
		services: make([]Service, 0),
		runner:   &run.Group{},
	}
}

func (a *App) WithService(s Service) *App {
	a.services = append(a.services, s)
	return a
}

func (a *App) Run(ctx context.Context) error {
	if len(a.services) == 0 {
		return errors.New("no services to run")
	}

	for _, service := range a.services {
		a.runner.Add(actor(ctx, service))
	}

	return a.runner.Run()
}
