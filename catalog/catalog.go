// Package catalog keeps the components table in memory, indexed by main
// type and by main type plus sub type.  It serves the components API when
// no database is configured.
package catalog

import (
	"context"
	"sync"

	"github.com/sengkeat-dex/Tokenize/models"
)

type subTypeKey struct {
	mainType string
	subType  string
}

type Catalog struct {
	sync.RWMutex
	components []models.Component
	byMainType map[string][]int
	bySubType  map[subTypeKey][]int
}

// New loads components in order, numbering them from 1.
func New(components []models.NewComponent) *Catalog {
	c := &Catalog{
		byMainType: make(map[string][]int),
		bySubType:  make(map[subTypeKey][]int),
	}
	for _, nc := range components {
		c.Add(nc)
	}
	return c
}

func (c *Catalog) Add(nc models.NewComponent) models.Component {
	c.Lock()
	defer c.Unlock()

	i := len(c.components)
	component := models.Component{
		ID:         int64(i + 1),
		MainType:   nc.MainType,
		SubType:    nc.SubType,
		Components: nc.Components,
	}
	c.components = append(c.components, component)
	c.byMainType[nc.MainType] = append(c.byMainType[nc.MainType], i)
	key := subTypeKey{mainType: nc.MainType, subType: nc.SubType}
	c.bySubType[key] = append(c.bySubType[key], i)
	return component
}

func (c *Catalog) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.components)
}

func (c *Catalog) GetAllComponents(_ context.Context) ([]models.Component, error) {
	c.RLock()
	defer c.RUnlock()

	result := make([]models.Component, len(c.components))
	copy(result, c.components)
	return result, nil
}

func (c *Catalog) GetComponentsByType(_ context.Context, mainType string) ([]models.Component, error) {
	c.RLock()
	defer c.RUnlock()
	return c.collect(c.byMainType[mainType]), nil
}

func (c *Catalog) GetComponentsBySubType(_ context.Context, mainType, subType string) ([]models.Component, error) {
	c.RLock()
	defer c.RUnlock()
	return c.collect(c.bySubType[subTypeKey{mainType: mainType, subType: subType}]), nil
}

// collect must be called with the read lock held
func (c *Catalog) collect(indices []int) []models.Component {
	result := make([]models.Component, 0, len(indices))
	for _, i := range indices {
		result = append(result, c.components[i])
	}
	return result
}
