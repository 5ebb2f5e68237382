package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/draftloom/manuscript/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ LocalStore = (*GormStore)(nil)

// GormStore implements LocalStore on the per-device sqlite database.
type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) PutDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(doc).Error
}

func (g *GormStore) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &doc, err
}

func (g *GormStore) ListDocuments(ctx context.Context, userID string) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Where("user_id = ?", userID).Find(&docs).Error
	return docs, err
}

func (g *GormStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Document{}).Error
}

func (g *GormStore) PutUnit(ctx context.Context, unit *model.ContentUnit) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(unit).Error
}

func (g *GormStore) GetUnit(ctx context.Context, id uuid.UUID) (*model.ContentUnit, error) {
	var unit model.ContentUnit
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &unit, err
}

func (g *GormStore) ListUnits(ctx context.Context, documentID uuid.UUID) ([]*model.ContentUnit, error) {
	var units []*model.ContentUnit
	err := g.db.WithContext(ctx).
		Where("document_id = ?", documentID.String()).
		Order("position asc").
		Find(&units).Error
	return units, err
}

func (g *GormStore) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.ContentUnit{}).Error
}

func (g *GormStore) DeleteUnitsByDocument(ctx context.Context, documentID uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("document_id = ?", documentID.String()).
		Delete(&model.ContentUnit{}).Error
}

func (g *GormStore) PutAnnotation(ctx context.Context, a *model.Annotation) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(a).Error
}

func (g *GormStore) GetAnnotation(ctx context.Context, id uuid.UUID) (*model.Annotation, error) {
	var a model.Annotation
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (g *GormStore) ListAnnotations(ctx context.Context, documentID uuid.UUID) ([]*model.Annotation, error) {
	var annotations []*model.Annotation
	err := g.db.WithContext(ctx).
		Where("document_id = ?", documentID.String()).
		Find(&annotations).Error
	return annotations, err
}

func (g *GormStore) ListUnitAnnotations(ctx context.Context, unitID uuid.UUID) ([]*model.Annotation, error) {
	var annotations []*model.Annotation
	err := g.db.WithContext(ctx).
		Where("unit_id = ?", unitID.String()).
		Find(&annotations).Error
	return annotations, err
}

func (g *GormStore) DeleteAnnotation(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Annotation{}).Error
}

func (g *GormStore) DeleteAnnotationsByDocument(ctx context.Context, documentID uuid.UUID) error {
	return g.db.WithContext(ctx).
		Where("document_id = ?", documentID.String()).
		Delete(&model.Annotation{}).Error
}

func (g *GormStore) AppendOperation(ctx context.Context, op *model.PendingOperation) error {
	return g.db.WithContext(ctx).Create(op).Error
}

func (g *GormStore) ListOperations(ctx context.Context) ([]*model.PendingOperation, error) {
	var ops []*model.PendingOperation
	err := g.db.WithContext(ctx).Order("created_at asc").Find(&ops).Error
	return ops, err
}

func (g *GormStore) CountOperations(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.PendingOperation{}).Count(&count).Error
	return count, err
}

func (g *GormStore) DeleteOperations(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).
		Where("id in (?)", ids).
		Delete(&model.PendingOperation{}).Error
}

func (g *GormStore) CreateSnapshot(ctx context.Context, s *model.DocumentSnapshot) error {
	return g.db.WithContext(ctx).Create(s).Error
}

func (g *GormStore) GetSnapshot(ctx context.Context, id uuid.UUID) (*model.DocumentSnapshot, error) {
	var s model.DocumentSnapshot
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &s, err
}

func (g *GormStore) ListSnapshots(ctx context.Context, documentID uuid.UUID) ([]*model.DocumentSnapshot, error) {
	var snapshots []*model.DocumentSnapshot
	err := g.db.WithContext(ctx).
		Where("document_id = ?", documentID.String()).
		Order("created_at desc").
		Find(&snapshots).Error
	return snapshots, err
}

func (g *GormStore) ListSnapshotsBefore(ctx context.Context, cutoff time.Time) ([]*model.DocumentSnapshot, error) {
	var snapshots []*model.DocumentSnapshot
	err := g.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Find(&snapshots).Error
	return snapshots, err
}

func (g *GormStore) DeleteSnapshots(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).
		Where("id in (?)", ids).
		Delete(&model.DocumentSnapshot{}).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx LocalStore) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
