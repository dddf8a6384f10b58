package publish

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "sdml",
		Category:    "entity",
		Version:     "v1",
		Description: "Lowered SDML subject with its triples",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}

	err = component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "sdml",
		Category:    "document",
		Version:     "v1",
		Description: "Serialized RDF document for one SDML module",
		Factory:     func() any { return &DocumentPayload{} },
	})
	if err != nil {
		panic("failed to register DocumentPayload: " + err.Error())
	}
}

// EntityType is the message type for lowered subjects.
var EntityType = message.Type{Domain: "sdml", Category: "entity", Version: "v1"}

// DocumentType is the message type for serialized module graphs.
var DocumentType = message.Type{Domain: "sdml", Category: "document", Version: "v1"}

// EntityPayload carries every triple whose subject is one IRI of a lowered
// module. It satisfies the graph ingestion contract (EntityID + Triples).
type EntityPayload struct {
	EntityID_  string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e *EntityPayload) EntityID() string          { return e.EntityID_ }
func (e *EntityPayload) Triples() []message.Triple { return e.TripleData }
func (e *EntityPayload) Schema() message.Type      { return EntityType }

func (e *EntityPayload) Validate() error {
	if e.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	return nil
}

func (e *EntityPayload) MarshalJSON() ([]byte, error) {
	type Alias EntityPayload
	return json.Marshal((*Alias)(e))
}

func (e *EntityPayload) UnmarshalJSON(data []byte) error {
	type Alias EntityPayload
	return json.Unmarshal(data, (*Alias)(e))
}

// DocumentPayload is a whole module graph in one RDF serialization.
type DocumentPayload struct {
	Module    string    `json:"module"`
	Format    string    `json:"format"`
	MIMEType  string    `json:"mime_type"`
	Content   string    `json:"content"`
	Triples   int       `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *DocumentPayload) Schema() message.Type { return DocumentType }

func (d *DocumentPayload) Validate() error {
	if d.Module == "" {
		return errors.New("module is required")
	}
	if d.Format == "" {
		return errors.New("format is required")
	}
	return nil
}

func (d *DocumentPayload) MarshalJSON() ([]byte, error) {
	type Alias DocumentPayload
	return json.Marshal((*Alias)(d))
}

func (d *DocumentPayload) UnmarshalJSON(data []byte) error {
	type Alias DocumentPayload
	return json.Unmarshal(data, (*Alias)(d))
}
