package model

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ChecklistItem is a single required follow-up generated for a unit.
// Checked state is user driven; generation never marks items checked.
type ChecklistItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Checked  bool   `json:"checked"`
	Category string `json:"category"`
}

// Checklist is the generated follow-up list of a unit.
type Checklist []ChecklistItem

// Complete reports whether every item is checked. An empty checklist is
// complete.
func (c Checklist) Complete() bool {
	for _, item := range c {
		if !item.Checked {
			return false
		}
	}
	return true
}

// IDs returns the item identifiers in order.
func (c Checklist) IDs() []string {
	ids := make([]string, 0, len(c))
	for _, item := range c {
		ids = append(ids, item.ID)
	}
	return ids
}

// EncodeChecklist serializes a checklist for a JSON column.
func EncodeChecklist(c Checklist) datatypes.JSON {
	if c == nil {
		c = Checklist{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		logrus.Errorf("encoding checklist: %v", err)
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// DecodeChecklist parses a stored checklist payload. A malformed payload
// decodes to an empty checklist rather than an error; the next metadata
// change regenerates it.
func DecodeChecklist(data datatypes.JSON) Checklist {
	if len(data) == 0 {
		return Checklist{}
	}
	var c Checklist
	if err := json.Unmarshal(data, &c); err != nil {
		logrus.Warnf("malformed checklist payload, treating as empty: %v", err)
		return Checklist{}
	}
	return c
}
