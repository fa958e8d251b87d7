// Package service implements the hub operations over the store, registry
// and router. A single Service instance is shared by all request handlers.
package service

import (
	"github.com/agenthub/agenthub/internal/config"
	"github.com/agenthub/agenthub/internal/registry"
	"github.com/agenthub/agenthub/internal/router"
	"github.com/agenthub/agenthub/internal/store"
	"github.com/agenthub/agenthub/policy"
)

type Service struct {
	store        store.Store
	registry     *registry.Registry
	router       *router.Router
	policyEngine *policy.Engine
	config       *config.Config
}

func New(store store.Store, reg *registry.Registry, rt *router.Router, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		registry:     reg,
		router:       rt,
		policyEngine: policyEngine,
		config:       cfg,
	}
}
