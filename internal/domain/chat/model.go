package chat

import "encoding/json"

// ModelRef is the model binding of a conversation: either unset (no message
// sent yet) or locked to a model id. The zero value is unset, so persisted
// conversations that predate the model field load as unset with no backfill
// step.
type ModelRef struct {
	id string
}

// LockedModel returns a ModelRef locked to the given model id.
func LockedModel(id string) ModelRef {
	return ModelRef{id: id}
}

// IsSet reports whether the conversation has been locked to a model.
func (m ModelRef) IsSet() bool {
	return m.id != ""
}

// ID returns the locked model id, or "" when unset.
func (m ModelRef) ID() string {
	return m.id
}

// MarshalJSON encodes an unset ref as null and a locked ref as the bare id,
// matching the persisted wire shape.
func (m ModelRef) MarshalJSON() ([]byte, error) {
	if !m.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(m.id)
}

// UnmarshalJSON accepts null, an absent field, or a string id. Anything
// unparseable leaves the ref unset rather than failing the load.
func (m *ModelRef) UnmarshalJSON(data []byte) error {
	var id *string
	if err := json.Unmarshal(data, &id); err != nil {
		m.id = ""
		return nil
	}
	if id == nil {
		m.id = ""
		return nil
	}
	m.id = *id
	return nil
}
