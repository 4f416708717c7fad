package service

import (
	"context"

	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/hotel-backoffice/internal/database/postgres"
	"github.com/ds124wfegd/hotel-backoffice/internal/entity"
)

type guestService struct {
	guestRepo repository.GuestRepository
}

// NewGuestService создает новый экземпляр GuestService
func NewGuestService(guestRepo repository.GuestRepository) GuestService {
	return &guestService{guestRepo: guestRepo}
}

func (s *guestService) CreateGuest(ctx context.Context, req *CreateGuestRequest) (*entity.Guest, error) {
	guest := &entity.Guest{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		DocumentNumber: req.DocumentNumber,
	}

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, err
	}

	logrus.Infof("Гость создан: ID=%d", guest.ID)

	return guest, nil
}

func (s *guestService) GetGuest(ctx context.Context, id int64) (*entity.Guest, error) {
	return s.guestRepo.GetByID(ctx, id)
}

func (s *guestService) GetAllGuests(ctx context.Context, nameQuery string) ([]*entity.Guest, error) {
	if nameQuery != "" {
		return s.guestRepo.SearchByName(ctx, nameQuery)
	}
	return s.guestRepo.GetAll(ctx)
}

func (s *guestService) UpdateGuest(ctx context.Context, id int64, req *UpdateGuestRequest) (*entity.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		guest.FullName = *req.FullName
	}
	if req.Email != nil {
		guest.Email = *req.Email
	}
	if req.Phone != nil {
		guest.Phone = *req.Phone
	}
	if req.DocumentNumber != nil {
		guest.DocumentNumber = *req.DocumentNumber
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, err
	}

	return guest, nil
}
