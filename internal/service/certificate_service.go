package service

import (
	"context"
	"errors"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	Repo     *repository.CertificateRepository
	UserRepo *repository.UserRepository
	Renderer ArtifactRenderer
}

func NewCertificateService(repo *repository.CertificateRepository, userRepo *repository.UserRepository, renderer ArtifactRenderer) *CertificateService {
	return &CertificateService{Repo: repo, UserRepo: userRepo, Renderer: renderer}
}

// Issue mints the certificate for (user, course) at most once. Repeated calls
// return the existing row unchanged; the boolean reports whether this call
// created it. Recipient and course names are snapshotted at issuance.
func (s *CertificateService) Issue(userID uint, course *model.Course) (*model.Certificate, bool, error) {
	existing, err := s.Repo.FindByUserAndCourse(userID, course.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, util.ErrCertificateNotFound) {
		return nil, false, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, false, err
	}

	cert := &model.Certificate{
		UserID:        userID,
		CourseID:      course.ID,
		Serial:        model.GenerateUUID(),
		RecipientName: user.FullName,
		CourseTitle:   course.Title,
		IssuedAt:      time.Now(),
	}

	if err := s.Repo.Create(cert); err != nil {
		// Lost the check-then-create race: another request already issued.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.Repo.FindByUserAndCourse(userID, course.ID)
			if ferr != nil {
				return nil, false, ferr
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.Uint("userId", userID),
		zap.Uint("courseId", course.ID),
		zap.String("serial", cert.Serial))

	s.renderArtifact(cert)

	return cert, true, nil
}

// renderArtifact is best-effort: a renderer failure is logged and never
// surfaces to the caller.
func (s *CertificateService) renderArtifact(cert *model.Certificate) {
	if s.Renderer == nil {
		return
	}
	url, err := s.Renderer.Render(context.Background(), cert)
	if err != nil {
		logger.Log.Warn("certificate artifact rendering failed",
			zap.String("serial", cert.Serial),
			zap.Error(err))
		return
	}
	cert.ArtifactURL = url
	if err := s.Repo.SetArtifactURL(cert.ID, url); err != nil {
		logger.Log.Warn("failed to store certificate artifact url",
			zap.String("serial", cert.Serial),
			zap.Error(err))
	}
}

func (s *CertificateService) ListForUser(userID uint) ([]model.Certificate, error) {
	return s.Repo.ListByUser(userID)
}

// Verify resolves a certificate by its public serial, the verification path
// open to anyone holding the serial.
func (s *CertificateService) Verify(serial string) (*model.Certificate, error) {
	return s.Repo.FindBySerial(serial)
}
