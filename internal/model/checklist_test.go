package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestChecklist_Complete(t *testing.T) {
	assert.True(t, Checklist{}.Complete())
	assert.True(t, Checklist{{ID: "a", Checked: true}}.Complete())
	assert.False(t, Checklist{{ID: "a", Checked: true}, {ID: "b"}}.Complete())
}

func TestChecklist_RoundTrip(t *testing.T) {
	c := Checklist{
		{ID: "identity-voice", Label: "Keep the voice consistent", Checked: true, Category: "identity"},
		{ID: "section-arrival", Label: "Establish the scene", Category: "section"},
	}
	assert.Equal(t, c, DecodeChecklist(EncodeChecklist(c)))
}

func TestDecodeChecklist_Malformed(t *testing.T) {
	assert.Empty(t, DecodeChecklist(nil))
	assert.Empty(t, DecodeChecklist(datatypes.JSON("not json")))
	assert.Empty(t, DecodeChecklist(datatypes.JSON(`{"id":"object not array"}`)))
}
