package store

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/draftloom/manuscript/internal/model"
)

func NewGormRemote(db *gorm.DB) *GormRemote {
	return &GormRemote{
		db: db,
	}
}

var _ RemoteStore = (*GormRemote)(nil)

// GormRemote implements RemoteStore on the shared postgres database. Remote
// rows are mapped to model types here, at the single point where remote data
// enters the system; the rest of the core never sees the wire shape.
type GormRemote struct {
	db *gorm.DB
}

// documentRow mirrors the remote documents table.
type documentRow struct {
	ID             string `gorm:"primaryKey;uuid;not null"`
	UserID         string `gorm:"uuid;not null;index:idx_remote_documents_user_id"`
	Title          string `gorm:"not null"`
	MaskIdentity   bool
	PenName        string
	RealName       string
	CurrentSection string
	WordCount      int
	IdentityState  string
	SenseState     string
	FinalGate      bool
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (documentRow) TableName() string {
	return "documents"
}

// contentUnitRow mirrors the remote content_units table. The checklist is a
// JSON-encoded text column; a payload that fails to decode is treated as an
// empty checklist, never as an error.
type contentUnitRow struct {
	ID             string `gorm:"primaryKey;uuid;not null"`
	DocumentID     string `gorm:"uuid;not null;index:idx_remote_content_units_document_id"`
	OrderIndex     int    `gorm:"not null"`
	Title          string
	Section        string `gorm:"not null"`
	Chapter        *string
	Body           string
	Footnote       string
	WordCount      int
	IdentityType   string
	SensoryFocus   string
	AwarenessLevel string
	FootnoteTone   string
	Status         string
	ValidationStat string `gorm:"column:validation_status"`
	Checklist      string
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (contentUnitRow) TableName() string {
	return "content_units"
}

// annotationRow mirrors the remote annotations table.
type annotationRow struct {
	ID         string `gorm:"primaryKey;uuid;not null"`
	DocumentID string `gorm:"uuid;not null;index:idx_remote_annotations_document_id"`
	UnitID     string `gorm:"uuid;not null"`
	Text       string `gorm:"not null"`
	Speaker    string
	Category   string  `gorm:"not null"`
	EchoUnitID *string `gorm:"uuid"`
	Flagged    bool
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (annotationRow) TableName() string {
	return "annotations"
}

func (r documentRow) toModel() *model.Document {
	return &model.Document{
		ID:             r.ID,
		UserID:         r.UserID,
		Title:          r.Title,
		MaskIdentity:   r.MaskIdentity,
		PenName:        r.PenName,
		RealName:       r.RealName,
		CurrentSection: model.Section(r.CurrentSection),
		WordCount:      r.WordCount,
		IdentityState:  datatypes.JSON(r.IdentityState),
		SenseState:     datatypes.JSON(r.SenseState),
		FinalGate:      r.FinalGate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func documentToRow(d *model.Document) *documentRow {
	return &documentRow{
		ID:             d.ID,
		UserID:         d.UserID,
		Title:          d.Title,
		MaskIdentity:   d.MaskIdentity,
		PenName:        d.PenName,
		RealName:       d.RealName,
		CurrentSection: string(d.CurrentSection),
		WordCount:      d.WordCount,
		IdentityState:  string(d.IdentityState),
		SenseState:     string(d.SenseState),
		FinalGate:      d.FinalGate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r contentUnitRow) toModel() *model.ContentUnit {
	unit := &model.ContentUnit{
		ID:             r.ID,
		DocumentID:     r.DocumentID,
		Position:       r.OrderIndex,
		Title:          r.Title,
		Section:        model.Section(r.Section),
		Chapter:        r.Chapter,
		Body:           r.Body,
		Footnote:       r.Footnote,
		WordCount:      r.WordCount,
		IdentityType:   model.IdentityType(r.IdentityType),
		SensoryFocus:   model.Sense(r.SensoryFocus),
		AwarenessLevel: model.AwarenessLevel(r.AwarenessLevel),
		FootnoteTone:   model.Tone(r.FootnoteTone),
		Status:         model.UnitStatus(r.Status),
		ValidationStat: model.ValidationStatus(r.ValidationStat),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	unit.SetChecklist(model.DecodeChecklist(datatypes.JSON(r.Checklist)))
	return unit
}

func unitToRow(u *model.ContentUnit) *contentUnitRow {
	return &contentUnitRow{
		ID:             u.ID,
		DocumentID:     u.DocumentID,
		OrderIndex:     u.Position,
		Title:          u.Title,
		Section:        string(u.Section),
		Chapter:        u.Chapter,
		Body:           u.Body,
		Footnote:       u.Footnote,
		WordCount:      u.WordCount,
		IdentityType:   string(u.IdentityType),
		SensoryFocus:   string(u.SensoryFocus),
		AwarenessLevel: string(u.AwarenessLevel),
		FootnoteTone:   string(u.FootnoteTone),
		Status:         string(u.Status),
		ValidationStat: string(u.ValidationStat),
		Checklist:      string(model.EncodeChecklist(u.Checklist())),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r annotationRow) toModel() *model.Annotation {
	return &model.Annotation{
		ID:         r.ID,
		DocumentID: r.DocumentID,
		UnitID:     r.UnitID,
		Text:       r.Text,
		Speaker:    r.Speaker,
		Category:   model.AnnotationCategory(r.Category),
		EchoUnitID: r.EchoUnitID,
		Flagged:    r.Flagged,
		CreatedAt:  r.CreatedAt,
	}
}

func annotationToRow(a *model.Annotation) *annotationRow {
	return &annotationRow{
		ID:         a.ID,
		DocumentID: a.DocumentID,
		UnitID:     a.UnitID,
		Text:       a.Text,
		Speaker:    a.Speaker,
		Category:   string(a.Category),
		EchoUnitID: a.EchoUnitID,
		Flagged:    a.Flagged,
		CreatedAt:  a.CreatedAt,
	}
}

func (g *GormRemote) SelectDocuments(ctx context.Context, userID string) ([]*model.Document, error) {
	var rows []documentRow
	err := g.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.toModel())
	}
	return docs, nil
}

func (g *GormRemote) SelectUnits(ctx context.Context, documentID string) ([]*model.ContentUnit, error) {
	var rows []contentUnitRow
	err := g.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("order_index asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	units := make([]*model.ContentUnit, 0, len(rows))
	for _, row := range rows {
		units = append(units, row.toModel())
	}
	return units, nil
}

func (g *GormRemote) SelectAnnotations(ctx context.Context, documentID string) ([]*model.Annotation, error) {
	var rows []annotationRow
	err := g.db.WithContext(ctx).Where("document_id = ?", documentID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	annotations := make([]*model.Annotation, 0, len(rows))
	for _, row := range rows {
		annotations = append(annotations, row.toModel())
	}
	return annotations, nil
}

func (g *GormRemote) UpsertDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(documentToRow(doc)).Error
}

func (g *GormRemote) UpsertUnit(ctx context.Context, unit *model.ContentUnit) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(unitToRow(unit)).Error
}

func (g *GormRemote) UpsertAnnotation(ctx context.Context, a *model.Annotation) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(annotationToRow(a)).Error
}

// MigrateRemote creates the remote schema. Useful for tests and self-hosted
// remotes; a managed remote normally owns its own schema.
func (g *GormRemote) MigrateRemote() error {
	return g.db.AutoMigrate(&documentRow{}, &contentUnitRow{}, &annotationRow{})
}
