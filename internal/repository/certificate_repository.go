package repository

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

// Create inserts the certificate row. The composite unique index on
// (user_id, course_id) closes the check-then-create race: the loser gets
// gorm.ErrDuplicatedKey and should re-fetch the winner's row.
func (r *CertificateRepository) Create(c *model.Certificate) error {
	return r.DB.Create(c).Error
}

func (r *CertificateRepository) FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error) {
	var c model.Certificate
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCertificateNotFound
	}
	return &c, err
}

func (r *CertificateRepository) FindBySerial(serial string) (*model.Certificate, error) {
	var c model.Certificate
	err := r.DB.Where("serial = ?", serial).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCertificateNotFound
	}
	return &c, err
}

func (r *CertificateRepository) ListByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("user_id = ?", userID).
		Order("issued_at desc").
		Find(&certs).Error
	return certs, err
}

// SetArtifactURL attaches the rendered artifact. This is the only mutation a
// certificate row ever sees; the identity fields stay immutable.
func (r *CertificateRepository) SetArtifactURL(id uint, url string) error {
	return r.DB.Model(&model.Certificate{}).
		Where("id = ?", id).
		Update("artifact_url", url).Error
}
