package repository

import (
	"errors"
	"strings"

	"legalpad/internal/domain/entity"

	"gorm.io/gorm"
)

// NoteSearch carries the list-endpoint knobs down to the store. Tags match
// any-of; Search is a contains-match over title, content and tags.
type NoteSearch struct {
	Search        string
	ClientID      int64
	AppointmentID int64
	NoteType      string
	Priority      string
	Tags          []string
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

var noteSortColumns = map[string]string{
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
	"lastAccessedAt": "last_accessed_at",
	"title":          "title",
	"priority":       "priority",
	"noteType":       "note_type",
}

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) FindActiveByID(ownerID, id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.
		Preload("Client").
		Preload("Appointment").
		Preload("Attachments").
		Where("id = ? AND owner_id = ? AND lifecycle = ?", id, ownerID, entity.LifecycleActive).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByID ignores lifecycle; used only for direct store inspection.
func (d *DefaultNoteRepository) FindByID(id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) List(ownerID int64, q *NoteSearch) ([]*entity.Note, int64, error) {
	tx := d.db.Model(&entity.Note{}).
		Where("owner_id = ? AND lifecycle = ?", ownerID, entity.LifecycleActive)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("lower(title) LIKE ? OR lower(content) LIKE ? OR tags LIKE ?", like, like, like)
	}
	if q.ClientID != 0 {
		tx = tx.Where("client_id = ?", q.ClientID)
	}
	if q.AppointmentID != 0 {
		tx = tx.Where("appointment_id = ?", q.AppointmentID)
	}
	if q.NoteType != "" {
		tx = tx.Where("note_type = ?", q.NoteType)
	}
	if q.Priority != "" {
		tx = tx.Where("priority = ?", q.Priority)
	}
	if len(q.Tags) > 0 {
		// Tags are stored space-joined; pad both sides so "law" cannot
		// match inside "lawsuit".
		cond := d.db.Where("1 = 0")
		for _, tag := range q.Tags {
			padded := "% " + strings.ToLower(strings.TrimSpace(tag)) + " %"
			cond = cond.Or("' ' || tags || ' ' LIKE ?", padded)
		}
		tx = tx.Where(cond)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []*entity.Note
	err := tx.
		Preload("Client").
		Preload("Appointment").
		Order(orderClause(noteSortColumns, q.SortBy, q.SortOrder, "created_at", "desc")).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// TagStrings returns the raw space-joined tag columns of the owner's active
// notes; the service splits and dedupes them.
func (d *DefaultNoteRepository) TagStrings(ownerID int64) ([]string, error) {
	var rows []string
	err := d.db.Model(&entity.Note{}).
		Where("owner_id = ? AND lifecycle = ? AND tags <> ''", ownerID, entity.LifecycleActive).
		Pluck("tags", &rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) AddAttachment(att *entity.NoteAttachment) error {
	return d.db.Create(att).Error
}
