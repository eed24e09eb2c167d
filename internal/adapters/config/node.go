package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/bale/internal/adapters/logger"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

// ModeEnvVar selects production defaults when set to "production".
const ModeEnvVar = "BALE_ENV"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// The build mode is resolved here, once, and threaded into the
			// loader; nothing reads the environment after wiring.
			mode := domain.ModeFromEnv(os.Getenv(ModeEnvVar))
			return NewLoader(mode, log), nil
		},
	})
}
