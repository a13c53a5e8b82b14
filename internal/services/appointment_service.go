package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"inkspot_backend/internal/email"
	"inkspot_backend/internal/logger"
	"inkspot_backend/internal/models"
	"inkspot_backend/internal/repositories"
	"inkspot_backend/internal/services/dto"
	"inkspot_backend/pkg/apperrors"
)

// Pusher доставляет realtime-события подключенным пользователям.
// Реализуется websocket-менеджером; nil-безопасные обертки ниже
// позволяют собирать сервис без него в тестах.
type Pusher interface {
	PushToUser(userID string, event string, payload interface{})
}

const (
	EventAppointmentCreated = "appointment_created"
	EventAppointmentUpdated = "appointment_updated"
)

type AppointmentService interface {
	Create(db *gorm.DB, clientID string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(db *gorm.DB, userID, appointmentID string) (*dto.AppointmentResponse, error)
	ListForUser(db *gorm.DB, userID string, role models.UserRole) (*dto.AppointmentListResponse, error)
	UnreadCount(db *gorm.DB, userID string, role models.UserRole) (*dto.UnreadCountResponse, error)
	MarkAllViewed(db *gorm.DB, userID string, role models.UserRole) error

	// Переходы статусов. Все проверяются по центральной таблице переходов
	ProposePrice(db *gorm.DB, artistID, appointmentID string, req *dto.ProposePriceRequest) (*dto.AppointmentResponse, error)
	RespondToPrice(db *gorm.DB, clientID, appointmentID string, accept bool) (*dto.AppointmentResponse, error)
	Reject(db *gorm.DB, artistID, appointmentID string) (*dto.AppointmentResponse, error)
	Cancel(db *gorm.DB, clientID, appointmentID string) (*dto.AppointmentResponse, error)

	Hide(db *gorm.DB, userID, appointmentID string) error
	SlotOptions() *dto.SlotOptionsResponse
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	userRepo        repositories.UserRepository
	pusher          Pusher
	mailer          email.Sender
}

func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	userRepo repositories.UserRepository,
	pusher Pusher,
	mailer email.Sender,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		pusher:          pusher,
		mailer:          mailer,
	}
}

func (s *appointmentService) Create(db *gorm.DB, clientID string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	artist, err := s.userRepo.FindByID(db, req.ArtistID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if artist.Role != models.UserRoleArtist {
		return nil, apperrors.ErrInvalidOperation("appointment", "appointments can only be booked with artists")
	}
	if clientID == req.ArtistID {
		return nil, apperrors.ErrInvalidOperation("appointment", "cannot book an appointment with yourself")
	}

	// Дата и время слота должны быть строго в будущем.
	// Формат даты уже проверен валидатором (appointment-date).
	if !slotInFuture(req.Date, req.Time, time.Now()) {
		return nil, apperrors.NewBadRequestError("select a future date and time")
	}

	appointment := &models.Appointment{
		ClientID:     clientID,
		ArtistID:     req.ArtistID,
		Date:         req.Date,
		Time:         req.Time,
		Description:  req.Description,
		BodyArea:     req.BodyArea,
		ImageURL:     req.ImageURL,
		Status:       models.AppointmentStatusPending,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Viewed:       false,
	}

	if err := s.appointmentRepo.Create(db, appointment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	appointment.Artist = artist

	logger.Info("appointment created",
		"appointment_id", appointment.ID,
		"client_id", clientID,
		"artist_id", req.ArtistID,
	)

	resp := buildAppointmentResponse(appointment)
	s.notifyBoth(appointment, EventAppointmentCreated, resp)
	s.sendMailAsync(artist.Email, "New appointment request",
		fmt.Sprintf("You have a new appointment request for %s at %s.", appointment.Date, appointment.Time))

	return resp, nil
}

func (s *appointmentService) Get(db *gorm.DB, userID, appointmentID string) (*dto.AppointmentResponse, error) {
	appointment, err := s.findOwned(db, userID, appointmentID)
	if err != nil {
		return nil, err
	}
	return buildAppointmentResponse(appointment), nil
}

func (s *appointmentService) ListForUser(db *gorm.DB, userID string, role models.UserRole) (*dto.AppointmentListResponse, error) {
	appointments, err := s.appointmentRepo.FindForUser(db, userID, role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.AppointmentListResponse{
		Appointments: make([]*dto.AppointmentResponse, 0, len(appointments)),
	}
	for i := range appointments {
		if appointments[i].IsHiddenFor(userID) {
			continue
		}
		resp.Appointments = append(resp.Appointments, buildAppointmentResponse(&appointments[i]))
	}
	resp.Total = len(resp.Appointments)
	return resp, nil
}

func (s *appointmentService) UnreadCount(db *gorm.DB, userID string, role models.UserRole) (*dto.UnreadCountResponse, error) {
	appointments, err := s.appointmentRepo.FindForUser(db, userID, role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var count int64
	for i := range appointments {
		if !appointments[i].Viewed && !appointments[i].IsHiddenFor(userID) {
			count++
		}
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *appointmentService) MarkAllViewed(db *gorm.DB, userID string, role models.UserRole) error {
	updated, err := s.appointmentRepo.MarkAllViewed(db, userID, role)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if updated > 0 {
		logger.Debug("appointments marked viewed", "user_id", userID, "count", updated)
	}
	return nil
}

func (s *appointmentService) ProposePrice(db *gorm.DB, artistID, appointmentID string, req *dto.ProposePriceRequest) (*dto.AppointmentResponse, error) {
	if req.Price <= 0 {
		return nil, apperrors.NewBadRequestError("price must be greater than zero")
	}

	appointment, err := s.findOwned(db, artistID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.ArtistID != artistID {
		return nil, apperrors.NewForbiddenError("only the artist can propose a price")
	}

	price := req.Price
	appointment.Price = &price

	resp, err := s.transition(db, appointment, models.AppointmentStatusPriceProposed)
	if err != nil {
		return nil, err
	}

	s.sendMailAsync(appointment.ContactEmail, "Price proposed for your appointment",
		fmt.Sprintf("The artist proposed a price of %.2f for your appointment on %s.", req.Price, appointment.Date))
	return resp, nil
}

func (s *appointmentService) RespondToPrice(db *gorm.DB, clientID, appointmentID string, accept bool) (*dto.AppointmentResponse, error) {
	appointment, err := s.findOwned(db, clientID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.ClientID != clientID {
		return nil, apperrors.NewForbiddenError("only the client can respond to a price")
	}

	target := models.AppointmentStatusCancelled
	if accept {
		target = models.AppointmentStatusConfirmed
	}
	return s.transition(db, appointment, target)
}

func (s *appointmentService) Reject(db *gorm.DB, artistID, appointmentID string) (*dto.AppointmentResponse, error) {
	appointment, err := s.findOwned(db, artistID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.ArtistID != artistID {
		return nil, apperrors.NewForbiddenError("only the artist can reject an appointment")
	}
	return s.transition(db, appointment, models.AppointmentStatusRejected)
}

func (s *appointmentService) Cancel(db *gorm.DB, clientID, appointmentID string) (*dto.AppointmentResponse, error) {
	appointment, err := s.findOwned(db, clientID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.ClientID != clientID {
		return nil, apperrors.NewForbiddenError("only the client can cancel an appointment")
	}
	return s.transition(db, appointment, models.AppointmentStatusCancelledByClient)
}

func (s *appointmentService) Hide(db *gorm.DB, userID, appointmentID string) error {
	appointment, err := s.findOwned(db, userID, appointmentID)
	if err != nil {
		return err
	}

	// Скрывать можно только завершенные заявки: активные должны
	// оставаться видимыми обеим сторонам
	if !appointment.Status.IsTerminal() {
		return apperrors.ErrInvalidStatus("appointment", "only finished appointments can be hidden")
	}

	appointment.Hide(userID)
	if err := s.appointmentRepo.Save(db, appointment); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *appointmentService) SlotOptions() *dto.SlotOptionsResponse {
	return &dto.SlotOptionsResponse{
		TimeSlots: models.AppointmentTimeSlots,
		BodyAreas: models.AppointmentBodyAreas,
	}
}

// transition выполняет смену статуса через центральную таблицу переходов,
// сбрасывает viewed и рассылает событие обеим сторонам.
func (s *appointmentService) transition(db *gorm.DB, appointment *models.Appointment, target models.AppointmentStatus) (*dto.AppointmentResponse, error) {
	if !models.CanTransition(appointment.Status, target) {
		return nil, apperrors.ErrInvalidStatus("appointment",
			fmt.Sprintf("cannot change status from %s to %s", appointment.Status, target))
	}

	appointment.Status = target
	appointment.Viewed = false

	if err := s.appointmentRepo.Save(db, appointment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("appointment status changed",
		"appointment_id", appointment.ID,
		"status", target,
	)

	resp := buildAppointmentResponse(appointment)
	s.notifyBoth(appointment, EventAppointmentUpdated, resp)
	return resp, nil
}

// findOwned возвращает заявку, если пользователь - одна из ее сторон.
// Чужим отдаем not found, не раскрывая существование записи.
func (s *appointmentService) findOwned(db *gorm.DB, userID, appointmentID string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAppointmentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if appointment.ClientID != userID && appointment.ArtistID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrAppointmentNotFound)
	}
	return appointment, nil
}

func (s *appointmentService) notifyBoth(appointment *models.Appointment, event string, payload *dto.AppointmentResponse) {
	if s.pusher == nil {
		return
	}
	s.pusher.PushToUser(appointment.ClientID, event, payload)
	s.pusher.PushToUser(appointment.ArtistID, event, payload)
}

func (s *appointmentService) sendMailAsync(to, subject, body string) {
	if s.mailer == nil || to == "" {
		return
	}
	go func() {
		start := time.Now()
		err := s.mailer.Send(to, subject, body)
		logger.MailLog(to, subject, time.Since(start), err)
	}()
}

// slotInFuture: дата сегодня - слот должен быть позже текущего часа,
// дата в будущем - всегда ок.
func slotInFuture(date, slot string, now time.Time) bool {
	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, now.Location())
	if err != nil {
		return false
	}
	return at.After(now)
}

func buildAppointmentResponse(appointment *models.Appointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:           appointment.ID,
		ClientID:     appointment.ClientID,
		ArtistID:     appointment.ArtistID,
		Date:         appointment.Date,
		Time:         appointment.Time,
		Description:  appointment.Description,
		BodyArea:     appointment.BodyArea,
		ImageURL:     appointment.ImageURL,
		Status:       appointment.Status,
		Price:        appointment.Price,
		ContactName:  appointment.ContactName,
		ContactPhone: appointment.ContactPhone,
		ContactEmail: appointment.ContactEmail,
		Viewed:       appointment.Viewed,
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}
	if appointment.Client != nil {
		resp.ClientName = appointment.Client.FullName
	}
	if appointment.Artist != nil {
		resp.ArtistName = appointment.Artist.FullName
		resp.StudioName = appointment.Artist.StudioName
	}
	return resp
}
