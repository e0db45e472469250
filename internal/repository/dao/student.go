package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrStudentNotFound = errors.New("student not found")

type Student struct {
	ID string `gorm:"primaryKey"`

	Name  string `gorm:"not null"`
	Phone string `gorm:"not null;index"`
	Plan  string `gorm:"not null"` // "FULL" or "HALF"

	// The three fixed installment slots live on the student row so a
	// slot change is a single-row UPDATE.
	Inst1Status string `gorm:"not null;default:UNPAID"`
	Inst1Proof  string `gorm:"type:text"`
	Inst1PaidAt *time.Time
	Inst2Status string `gorm:"not null;default:UNPAID"`
	Inst2Proof  string `gorm:"type:text"`
	Inst2PaidAt *time.Time
	Inst3Status string `gorm:"not null;default:UNPAID"`
	Inst3Proof  string `gorm:"type:text"`
	Inst3PaidAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudentDAO struct {
	db *gorm.DB
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		db: db,
	}
}

func (d *StudentDAO) Insert(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByID(ctx context.Context, id string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByPhone(ctx context.Context, phone string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "phone = ?", phone)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) List(ctx context.Context) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).Order("created_at").Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

// Update writes only the base fields; installment slots go through
// UpdateInstallment so a review and a profile edit cannot clobber each
// other.
func (d *StudentDAO) Update(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Model(&Student{}).
		Where("id = ?", student.ID).
		Updates(map[string]interface{}{
			"name":  student.Name,
			"phone": student.Phone,
			"plan":  student.Plan,
		})
	if result.Error != nil {
		return Student{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Student{}, ErrStudentNotFound
	}

	return d.FindByID(ctx, student.ID)
}

// UpdateInstallment updates a single slot's three columns in one
// row-level UPDATE.
func (d *StudentDAO) UpdateInstallment(ctx context.Context, studentID, slot, status, proof string, paidAt *time.Time) error {
	result := d.db.WithContext(ctx).Model(&Student{}).
		Where("id = ?", studentID).
		Updates(map[string]interface{}{
			slot + "_status":  status,
			slot + "_proof":   proof,
			slot + "_paid_at": paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Delete removes the student and, per the declared cascade policy, all
// dependent classroom records in one transaction.
func (d *StudentDAO) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&Submission{}, &Attempt{}, &Progress{}, &Grade{}} {
			if err := tx.Delete(dependent, "student_id = ?", id).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&Student{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStudentNotFound
		}

		return nil
	})
}
