package memory

import (
	"context"
	"fmt"
	"sync"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// Catalog is an in-memory service catalog. It stands in for the external
// catalog in tests and in single-process deployments.
type Catalog struct {
	mu       sync.RWMutex
	services map[kernel.UUID]*catalog.Service
}

func NewCatalog() *Catalog {
	return &Catalog{services: make(map[kernel.UUID]*catalog.Service)}
}

func (c *Catalog) Add(_ context.Context, service *catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[service.ID()] = service
	return nil
}

func (c *Catalog) Get(_ context.Context, id kernel.UUID) (*catalog.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	service, ok := c.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrServiceDoesNotExist, id)
	}
	return service, nil
}
