package repository

import (
	"errors"

	"legalpad/internal/domain/entity"

	"gorm.io/gorm"
)

// AppointmentSearch carries the list-endpoint knobs down to the store.
// StartFrom/StartTo bound the start_time column; zero means unbounded.
type AppointmentSearch struct {
	StartFrom int64
	StartTo   int64
	Status    string
	ClientID  int64
	Type      string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

var appointmentSortColumns = map[string]string{
	"startTime": "start_time",
	"endTime":   "end_time",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
}

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (d *DefaultAppointmentRepository) FindActiveByID(ownerID, id int64) (*entity.Appointment, error) {
	var apt entity.Appointment
	err := d.db.
		Preload("Client").
		Where("id = ? AND owner_id = ? AND lifecycle = ?", id, ownerID, entity.LifecycleActive).
		First(&apt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &apt, nil
}

// FindByID ignores lifecycle; used only for direct store inspection.
func (d *DefaultAppointmentRepository) FindByID(id int64) (*entity.Appointment, error) {
	var apt entity.Appointment
	err := d.db.First(&apt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &apt, nil
}

// FindLive returns the owner's appointments that currently hold their time
// slot: not soft-deleted and not in a terminal status. This is the candidate
// set the scheduling policy runs its overlap check against.
func (d *DefaultAppointmentRepository) FindLive(ownerID int64) ([]*entity.Appointment, error) {
	var apts []*entity.Appointment
	err := d.db.
		Where("owner_id = ? AND lifecycle = ?", ownerID, entity.LifecycleActive).
		Where("status NOT IN ?", entity.TerminalStatuses).
		Find(&apts).Error
	if err != nil {
		return nil, err
	}
	return apts, nil
}

func (d *DefaultAppointmentRepository) List(ownerID int64, q *AppointmentSearch) ([]*entity.Appointment, int64, error) {
	tx := d.db.Model(&entity.Appointment{}).
		Where("owner_id = ? AND lifecycle = ?", ownerID, entity.LifecycleActive)

	if q.StartFrom != 0 {
		tx = tx.Where("start_time >= ?", q.StartFrom)
	}
	if q.StartTo != 0 {
		tx = tx.Where("start_time <= ?", q.StartTo)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.ClientID != 0 {
		tx = tx.Where("client_id = ?", q.ClientID)
	}
	if q.Type != "" {
		tx = tx.Where("appointment_type = ?", q.Type)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apts []*entity.Appointment
	err := tx.
		Preload("Client").
		Order(orderClause(appointmentSortColumns, q.SortBy, q.SortOrder, "start_time", "asc")).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&apts).Error
	if err != nil {
		return nil, 0, err
	}
	return apts, total, nil
}

// ListWindow returns the owner's active appointments starting inside
// [from, to], sorted by start time. Calendar view.
func (d *DefaultAppointmentRepository) ListWindow(ownerID, from, to int64) ([]*entity.Appointment, error) {
	var apts []*entity.Appointment
	err := d.db.
		Preload("Client").
		Where("owner_id = ? AND lifecycle = ?", ownerID, entity.LifecycleActive).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time asc").
		Find(&apts).Error
	if err != nil {
		return nil, err
	}
	return apts, nil
}

func (d *DefaultAppointmentRepository) Save(apt *entity.Appointment) error {
	return d.db.Save(apt).Error
}
