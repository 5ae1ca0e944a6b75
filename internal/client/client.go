// Package client provides the hosting client commands are validated against.
package client

import (
	"slices"
	"sync"

	pkgcmd "github.com/rashpile/pako-discord/pkg/command"
)

// Config holds the vocabulary a client recognizes.
type Config struct {
	OwnerID string
	Types   []pkgcmd.Type // empty means pkgcmd.StandardTypes()
}

// Client implements pkgcmd.Host. It is safe for concurrent use.
type Client struct {
	mu      sync.RWMutex
	ownerID string
	types   map[pkgcmd.Type]struct{}
}

// New creates a client from cfg.
func New(cfg Config) *Client {
	c := &Client{}
	c.Reload(cfg)
	return c
}

// HasType reports whether t is a recognized command category.
func (c *Client) HasType(t pkgcmd.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[t]
	return ok
}

// HasPermission reports whether p is in the Discord permission vocabulary.
func (c *Client) HasPermission(p pkgcmd.Permission) bool {
	return p.Known()
}

// OwnerID returns the configured bot owner.
func (c *Client) OwnerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ownerID
}

// IsOwner reports whether userID is the bot owner. An unset owner matches nobody.
func (c *Client) IsOwner(userID string) bool {
	return pkgcmd.IsOwner(c, userID)
}

// Types returns the recognized categories, standard ones first.
func (c *Client) Types() []pkgcmd.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()

	types := make([]pkgcmd.Type, 0, len(c.types))
	for _, t := range pkgcmd.StandardTypes() {
		if _, ok := c.types[t]; ok {
			types = append(types, t)
		}
	}
	var custom []pkgcmd.Type
	for t := range c.types {
		if !slices.Contains(pkgcmd.StandardTypes(), t) {
			custom = append(custom, t)
		}
	}
	slices.Sort(custom)
	return append(types, custom...)
}

// Reload replaces the owner and type vocabulary.
// Commands built earlier keep their validated metadata.
func (c *Client) Reload(cfg Config) {
	src := cfg.Types
	if len(src) == 0 {
		src = pkgcmd.StandardTypes()
	}
	types := make(map[pkgcmd.Type]struct{}, len(src))
	for _, t := range src {
		types[t] = struct{}{}
	}

	c.mu.Lock()
	c.ownerID = cfg.OwnerID
	c.types = types
	c.mu.Unlock()
}
