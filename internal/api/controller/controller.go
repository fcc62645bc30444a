package controller

import (
	"github.com/terraship/carbonroute/internal/pkg/store"
	"github.com/terraship/carbonroute/internal/service/orchestrator"
)

type Controller struct {
	orchestrator *orchestrator.Service
	store        store.Store
}

func NewController(orch *orchestrator.Service, store store.Store) *Controller {
	return &Controller{orchestrator: orch, store: store}
}
