package repository

import (
	"errors"
	"strings"

	"legalpad/internal/domain/entity"

	"gorm.io/gorm"
)

// ClientSearch carries the list-endpoint knobs down to the store. Zero
// values mean "no filter".
type ClientSearch struct {
	Search    string
	Status    string
	CaseType  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Sortable columns are whitelisted so the sortBy query param can never
// reach the ORDER BY clause raw.
var clientSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
	"priority":  "priority",
	"caseType":  "case_type",
}

type DefaultClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *DefaultClientRepository {
	return &DefaultClientRepository{db: db}
}

func (d *DefaultClientRepository) FindActiveByID(ownerID, id int64) (*entity.Client, error) {
	var client entity.Client
	err := d.db.
		Preload("Notes").
		Where("id = ? AND owner_id = ? AND lifecycle = ?", id, ownerID, entity.LifecycleActive).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByID ignores lifecycle; used only for direct store inspection.
func (d *DefaultClientRepository) FindByID(id int64) (*entity.Client, error) {
	var client entity.Client
	err := d.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (d *DefaultClientRepository) Search(ownerID int64, q *ClientSearch) ([]*entity.Client, int64, error) {
	tx := d.db.Model(&entity.Client{}).
		Where("owner_id = ? AND lifecycle = ?", ownerID, entity.LifecycleActive)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"lower(name) LIKE ? OR phone LIKE ? OR lower(case_number) LIKE ? OR lower(email) LIKE ?",
			like, like, like, like,
		)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.CaseType != "" {
		tx = tx.Where("case_type = ?", q.CaseType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []*entity.Client
	err := tx.
		Order(orderClause(clientSortColumns, q.SortBy, q.SortOrder, "created_at", "desc")).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (d *DefaultClientRepository) Suggest(ownerID int64, q string, limit int) ([]*entity.Client, error) {
	like := "%" + strings.ToLower(q) + "%"

	var clients []*entity.Client
	err := d.db.
		Where("owner_id = ? AND lifecycle = ?", ownerID, entity.LifecycleActive).
		Where("lower(name) LIKE ? OR phone LIKE ? OR lower(case_number) LIKE ?", like, like, like).
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// ExistsCaseNumber reports whether another non-deleted client of the same
// owner already holds the case number. Empty numbers are exempt from the
// uniqueness rule.
func (d *DefaultClientRepository) ExistsCaseNumber(ownerID int64, caseNumber string, excludeID int64) (bool, error) {
	if caseNumber == "" {
		return false, nil
	}

	var count int64
	err := d.db.Model(&entity.Client{}).
		Where("owner_id = ? AND case_number = ? AND lifecycle <> ?", ownerID, caseNumber, entity.LifecycleDeleted).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *DefaultClientRepository) Save(client *entity.Client) error {
	return d.db.Save(client).Error
}

func (d *DefaultClientRepository) AddNote(note *entity.ClientNote) error {
	return d.db.Create(note).Error
}

func orderClause(columns map[string]string, sortBy, sortOrder, defaultCol, defaultDir string) string {
	col, ok := columns[sortBy]
	if !ok {
		col = defaultCol
	}

	dir := defaultDir
	switch strings.ToLower(sortOrder) {
	case "asc":
		dir = "asc"
	case "desc":
		dir = "desc"
	}
	return col + " " + dir
}
