package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/hotel-backoffice/config"
	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
	"github.com/ds124wfegd/hotel-backoffice/pkg/storage"
)

// Типы файлов соглашений по расширению и MIME
var agreementMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

type agreementService struct {
	agreementRepo repository.AgreementRepository
	bookingRepo   repository.BookingRepository
	files         storage.FileStorage
	cfg           config.UploadConfig
}

// NewAgreementService создает новый экземпляр AgreementService
func NewAgreementService(
	agreementRepo repository.AgreementRepository,
	bookingRepo repository.BookingRepository,
	files storage.FileStorage,
	cfg config.UploadConfig,
) AgreementService {
	return &agreementService{
		agreementRepo: agreementRepo,
		bookingRepo:   bookingRepo,
		files:         files,
		cfg:           cfg,
	}
}

// UploadAgreement сохраняет файл соглашения и его метаданные; при ошибке
// записи метаданных сохраненный файл удаляется
func (s *agreementService) UploadAgreement(ctx context.Context, bookingID int64, header *multipart.FileHeader) (*entity.Agreement, error) {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	mimeType, ok := agreementMimeTypes[ext]
	if !ok || !s.allowed(ext) {
		return nil, entity.ErrUnsupportedFileType
	}

	if header.Size > s.cfg.MaxSizeBytes {
		return nil, entity.ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии загруженного файла: %w", err)
	}
	defer src.Close()

	// Хранимое имя не зависит от пользовательского
	storedPath := filepath.Join(
		fmt.Sprintf("bookings/%d", bookingID),
		uuid.New().String()+ext,
	)

	if err := s.files.Save(storedPath, src); err != nil {
		return nil, fmt.Errorf("ошибка при сохранении файла соглашения: %w", err)
	}

	agreement := &entity.Agreement{
		BookingID:  bookingID,
		FileName:   filepath.Base(header.Filename),
		StoredPath: storedPath,
		MimeType:   mimeType,
		SizeBytes:  header.Size,
	}

	if err := s.agreementRepo.Create(ctx, agreement); err != nil {
		// Не оставляем осиротевший файл в хранилище
		if rmErr := s.files.Delete(storedPath); rmErr != nil {
			logrus.Errorf("Ошибка при удалении файла %s после сбоя метаданных: %v", storedPath, rmErr)
		}
		return nil, err
	}

	logrus.Infof("Соглашение загружено: ID=%d, Booking=%d, File=%s", agreement.ID, bookingID, agreement.FileName)

	return agreement, nil
}

func (s *agreementService) GetAgreement(ctx context.Context, id int64) (*entity.Agreement, error) {
	return s.agreementRepo.GetByID(ctx, id)
}

// OpenAgreement возвращает метаданные и содержимое файла; закрыть reader
// обязан вызывающий
func (s *agreementService) OpenAgreement(ctx context.Context, id int64) (*entity.Agreement, io.ReadCloser, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.files.Get(agreement.StoredPath)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка при чтении файла соглашения: %w", err)
	}

	return agreement, reader, nil
}

func (s *agreementService) GetBookingAgreements(ctx context.Context, bookingID int64) ([]*entity.Agreement, error) {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}

	return s.agreementRepo.GetByBookingID(ctx, bookingID)
}

// DeleteAgreement удаляет метаданные и файл; отсутствие файла не считается ошибкой
func (s *agreementService) DeleteAgreement(ctx context.Context, id int64) error {
	agreement, err := s.agreementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.agreementRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.files.Exists(agreement.StoredPath) {
		if err := s.files.Delete(agreement.StoredPath); err != nil {
			logrus.Errorf("Ошибка при удалении файла соглашения %s: %v", agreement.StoredPath, err)
		}
	}

	return nil
}

// allowed сверяет расширение со списком из конфигурации
func (s *agreementService) allowed(ext string) bool {
	trimmed := strings.TrimPrefix(ext, ".")
	for _, t := range s.cfg.AllowedTypes {
		if strings.EqualFold(t, trimmed) {
			return true
		}
	}
	return false
}
