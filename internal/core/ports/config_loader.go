package ports

import "go.trai.ch/bale/internal/core/domain"

// ConfigLoader loads the target registry from the balefile.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the balefile for the given working directory and returns
	// the populated registry. Malformed declarations fail here.
	Load(cwd string) (*domain.Registry, error)

	// DiscoverConfigPath walks up from cwd and returns the balefile path.
	DiscoverConfigPath(cwd string) (string, error)
}
