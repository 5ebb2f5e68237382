package model

// DocumentArchive is the serialized form of one document with all its
// children. It is the payload of a DocumentSnapshot: written just before a
// pull overwrites the local aggregate, read back on restore.
type DocumentArchive struct {
	Document    *Document      `json:"document"`
	Units       []*ContentUnit `json:"units"`
	Annotations []*Annotation  `json:"annotations"`
}
