package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type (
	Service interface {
		Init() error
		Run(ctx context.Context)
		Stop()
	}
	Services interface {
		AddService(service ...Service)
		Run(ctx context.Context) error
	}
	Manager struct {
		log      Logger
		services []Service
	}
)

func NewManager(log Logger) Services {
	return &Manager{log: log}
}

func (s *Manager) AddService(service ...Service) {
	s.services = append(s.services, service...)
}

// Run initializes services in order and blocks until a shutdown signal or ctx
// cancellation, then stops them in reverse order.
func (s *Manager) Run(ctx context.Context) error {
	s.log.Info("going to start services")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for count, service := range s.services {
		if err := service.Init(); err != nil {
			for i := count - 1; i >= 0; i-- {
				s.services[i].Stop()
			}
			return err
		}
		go service.Run(ctx)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		s.log.Info("received signal %s", sig)
	case <-ctx.Done():
	}

	cancel()
	s.stop()
	return nil
}

func (s *Manager) stop() {
	s.log.Info("going to stop")
	for i := len(s.services) - 1; i >= 0; i-- {
		s.services[i].Stop()
	}
}
