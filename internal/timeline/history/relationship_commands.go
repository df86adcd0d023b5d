package history

import (
	"github.com/dshills/montage/internal/timeline/multitrack"
	"github.com/dshills/montage/internal/timeline/track"
)

// AddRelationshipCommand adds a typed edge between two tracks.
type AddRelationshipCommand struct {
	Source       track.TrackID
	Target       track.TrackID
	Relationship multitrack.Relationship
}

// NewAddRelationshipCommand creates a command that adds the edge.
func NewAddRelationshipCommand(source, target track.TrackID, rel multitrack.Relationship) *AddRelationshipCommand {
	return &AddRelationshipCommand{Source: source, Target: target, Relationship: rel}
}

// Execute adds the edge, running the full cycle check.
func (c *AddRelationshipCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	return graph.AddRelationship(c.Source, c.Target, c.Relationship, tracks)
}

// Undo removes the edge again.
func (c *AddRelationshipCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	_, err := graph.RemoveRelationship(c.Source, c.Target)
	return err
}

// Description returns a human-readable description.
func (c *AddRelationshipCommand) Description() string { return "Add Relationship" }

// RemoveRelationshipCommand removes an edge, remembering its kind.
type RemoveRelationshipCommand struct {
	Source track.TrackID
	Target track.TrackID

	prev multitrack.Relationship
}

// NewRemoveRelationshipCommand creates a command that removes the edge.
func NewRemoveRelationshipCommand(source, target track.TrackID) *RemoveRelationshipCommand {
	return &RemoveRelationshipCommand{Source: source, Target: target}
}

// Execute removes the edge, capturing its kind.
func (c *RemoveRelationshipCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	prev, err := graph.RemoveRelationship(c.Source, c.Target)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo re-adds the edge with its original kind.
func (c *RemoveRelationshipCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	return graph.AddRelationship(c.Source, c.Target, c.prev, tracks)
}

// Description returns a human-readable description.
func (c *RemoveRelationshipCommand) Description() string { return "Remove Relationship" }

// UpdateRelationshipCommand changes an edge's kind, remembering the
// previous kind.
type UpdateRelationshipCommand struct {
	Source       track.TrackID
	Target       track.TrackID
	Relationship multitrack.Relationship

	prev multitrack.Relationship
}

// NewUpdateRelationshipCommand creates a command that retypes the edge.
func NewUpdateRelationshipCommand(source, target track.TrackID, rel multitrack.Relationship) *UpdateRelationshipCommand {
	return &UpdateRelationshipCommand{Source: source, Target: target, Relationship: rel}
}

// Execute applies the new kind, capturing the previous one.
func (c *UpdateRelationshipCommand) Execute(tracks *track.List, graph *multitrack.Manager) error {
	prev, err := graph.UpdateRelationship(c.Source, c.Target, c.Relationship)
	if err != nil {
		return err
	}
	c.prev = prev
	return nil
}

// Undo swaps the edge back to its previous kind.
func (c *UpdateRelationshipCommand) Undo(tracks *track.List, graph *multitrack.Manager) error {
	_, err := graph.UpdateRelationship(c.Source, c.Target, c.prev)
	return err
}

// Description returns a human-readable description.
func (c *UpdateRelationshipCommand) Description() string { return "Update Relationship" }
