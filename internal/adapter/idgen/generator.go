// Package idgen issues identifiers for new users, conversations and messages.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// Generator issues random UUIDs for entities and snowflake ids for messages.
// Message ids are time-ordered and unique across processes with distinct node ids.
type Generator struct {
	node *snowflake.Node
}

// New creates a Generator for the given snowflake node (0..1023).
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("idgen: snowflake node %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

// NewID returns a random UUID for a user or conversation.
func (g *Generator) NewID() uuid.UUID {
	return uuid.New()
}

// NewMessageID returns the next snowflake id from this node.
func (g *Generator) NewMessageID() int64 {
	return g.node.Generate().Int64()
}
