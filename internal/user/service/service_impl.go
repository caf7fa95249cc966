package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/Gani-23/Oauth4.0/config"
	"github.com/Gani-23/Oauth4.0/internal/infrastructure/messagequeue/kafka"
	"github.com/Gani-23/Oauth4.0/internal/user/domain"
	"github.com/Gani-23/Oauth4.0/internal/user/dto"
	"github.com/Gani-23/Oauth4.0/internal/user/repository"
	pkgdto "github.com/Gani-23/Oauth4.0/pkg/dto"
	"github.com/Gani-23/Oauth4.0/pkg/errs"
	"github.com/Gani-23/Oauth4.0/pkg/metrics"
	"github.com/Gani-23/Oauth4.0/pkg/utils"
	"github.com/Gani-23/Oauth4.0/pkg/validator"
)

type ServiceImpl struct {
	repo          repository.UserRepository
	config        config.Config
	kafkaProducer kafka.Producer
}

func CreateNewService(repo repository.UserRepository, config config.Config, kafkaProducer kafka.Producer) UserService {
	return &ServiceImpl{repo: repo, config: config, kafkaProducer: kafkaProducer}
}

func (s *ServiceImpl) Register(ctx context.Context, data dto.RegisterRequest) (resp dto.UserResponse, err error) {
	details, err := validator.Validate(data)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "Register").Msg("payload validation failed")
		return
	}

	existing, err := s.repo.GetUserByUsername(ctx, data.Username)
	if err != nil {
		return
	}
	if !existing.ID.IsZero() {
		return resp, errs.ErrUsernameAlreadyUsed
	}

	existing, err = s.repo.GetUserByEmail(ctx, data.Email)
	if err != nil {
		return
	}
	if !existing.ID.IsZero() {
		return resp, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return resp, err
	}

	role := data.Role
	if role == "" {
		role = "user"
	}

	projects := dedupeProjects(data.Projects)
	if len(projects) == 0 {
		projects = []string{s.config.DefaultProject}
	}

	timestamp := time.Now().UnixMilli()
	userEnt := domain.User{
		Username:       data.Username,
		Email:          data.Email,
		Name:           data.Name,
		HashedPassword: string(hash),
		Role:           role,
		Projects:       projects,
		ExternalID:     ulid.Make().String(),
		CreatedAt:      timestamp,
		UpdatedAt:      timestamp,
	}

	_, err = s.repo.AddUser(ctx, userEnt)
	if err != nil {
		return resp, err
	}

	s.publishEvent(ctx, "user_registered", dto.UserResponse{
		ExternalID: userEnt.ExternalID,
		Username:   userEnt.Username,
		Email:      userEnt.Email,
	})

	go s.sendWelcomeEmail(userEnt.Email, userEnt.Username)

	resp = dto.UserResponse{
		ExternalID: userEnt.ExternalID,
		Username:   userEnt.Username,
		Email:      userEnt.Email,
		Name:       userEnt.Name,
		Role:       userEnt.Role,
		Projects:   userEnt.Projects,
	}

	return resp, nil
}

// Login verifies credentials and project membership. The redirect target
// comes from the project table injected through the config.
func (s *ServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (resp dto.LoginResponse, err error) {
	details, err := validator.Validate(payload)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "Login").Msg("payload validation failed")
		return
	}

	user, err := s.repo.GetUserByIdentifier(ctx, payload.Identifier)
	if err != nil {
		return
	}

	if user.ID.IsZero() {
		metrics.LoginAttempts.WithLabelValues("unknown_account").Inc()
		return resp, errs.ErrAccountNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(payload.Password))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		metrics.LoginAttempts.WithLabelValues("bad_credentials").Inc()
		return resp, errs.ErrInvalidCredentials
	}

	project := payload.Project
	if project == "" {
		project = s.config.DefaultProject
	}

	redirectURL, configured := s.config.ProjectRedirects[project]
	if !user.HasProject(project) || !configured {
		metrics.LoginAttempts.WithLabelValues("project_unauthorized").Inc()
		return resp, errs.ErrProjectNotAuthorized
	}

	token, err := utils.CreateJWTToken(user.ExternalID, user.Username, user.Role, project, s.config.JWTSecret)
	if err != nil {
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()

	resp = dto.LoginResponse{
		Token:       token,
		RedirectURL: redirectURL,
		ExternalID:  user.ExternalID,
		Username:    user.Username,
		Role:        user.Role,
	}

	return resp, nil
}

func (s *ServiceImpl) UpdateUserName(ctx context.Context, payload dto.UpdateNameRequest) (err error) {
	details, err := validator.Validate(payload)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "UpdateUserName").Msg("payload validation failed")
		return
	}

	if err = s.repo.UpdateUserName(ctx, payload.Identifier, payload.Name, time.Now().UnixMilli()); err != nil {
		return
	}

	s.publishEvent(ctx, "user_updated", map[string]string{
		"identifier": payload.Identifier,
		"name":       payload.Name,
	})

	return nil
}

func (s *ServiceImpl) UpdatePassword(ctx context.Context, payload dto.UpdatePasswordRequest) (err error) {
	details, err := validator.Validate(payload)
	if err != nil {
		log.Ctx(ctx).Error().Interface("details", details).Str("component", "UpdatePassword").Msg("payload validation failed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdateUserPassword(ctx, payload.Identifier, string(hash), time.Now().UnixMilli())
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, identifier string) (err error) {
	user, err := s.repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return
	}

	if user.ID.IsZero() {
		return errs.ErrAccountNotFound
	}

	if err = s.repo.DeleteUser(ctx, identifier); err != nil {
		return
	}

	s.publishEvent(ctx, "user_deleted", map[string]string{
		"externalId": user.ExternalID,
		"username":   user.Username,
		"email":      user.Email,
	})

	return nil
}

func dedupeProjects(projects []string) []string {
	seen := make(map[string]struct{}, len(projects))
	deduped := make([]string, 0, len(projects))

	for _, project := range projects {
		if project == "" {
			continue
		}
		if _, ok := seen[project]; ok {
			continue
		}

		seen[project] = struct{}{}
		deduped = append(deduped, project)
	}

	return deduped
}

func (s *ServiceImpl) sendWelcomeEmail(email string, username string) {
	if s.config.SMTPConfig.Host == "" {
		return
	}

	mailer := utils.NewMailer(s.config.SMTPConfig.Host, s.config.SMTPConfig.Port, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password)
	body := "Hi " + username + ", your account has been created."
	if err := mailer.Send(email, "Welcome aboard", body); err != nil {
		log.Error().Err(err).Str("component", "sendWelcomeEmail").Msg("")
	}
}

func (s *ServiceImpl) publishEvent(ctx context.Context, eventType string, data interface{}) {
	kafkaMsg := pkgdto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		_, err = s.kafkaProducer.WriteMessages(kafkago.Message{Value: jsonMsg})
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		time.Sleep(time.Second * time.Duration(i+1))
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msg("giving up publishing event")
}
