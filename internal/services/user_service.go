package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/imoblead/fichapro-api/internal/jobs"
	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/internal/repository"
)

// UserService handles user-related business logic
type UserService struct {
	repo         repository.UserRepository
	worker       *jobs.Worker
	emailService *EmailService
	auditSvc     *AuditService
	imageSvc     *ImageService
}

func NewUserService(repo repository.UserRepository, worker *jobs.Worker, emailService *EmailService, auditSvc *AuditService, imageSvc *ImageService) *UserService {
	return &UserService{
		repo:         repo,
		worker:       worker,
		emailService: emailService,
		auditSvc:     auditSvc,
		imageSvc:     imageSvc,
	}
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *UserService) Create(ctx context.Context, user *models.User, password string, actor *models.User) error {
	user.Email = strings.ToLower(user.Email)
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	// Welcome email is best-effort; failures are logged inside the sender.
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.emailService.SendAccountCreated(ctx, user)
	})
	return s.audit(ctx, actor, "USER_CREATE",
		fmt.Sprintf("Usuário criado: %s (%s), perfil %s", user.FullName, user.Email, user.Role))
}

func (s *UserService) Update(ctx context.Context, user *models.User, actor *models.User) error {
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.audit(ctx, actor, "USER_UPDATE", fmt.Sprintf("Usuário atualizado: %s", user.Email))
}

func (s *UserService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	return s.audit(ctx, actor, "USER_DELETE", fmt.Sprintf("Usuário %d desativado", id))
}

func (s *UserService) Restore(ctx context.Context, id uint, actor *models.User) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	return s.audit(ctx, actor, "USER_RESTORE", fmt.Sprintf("Usuário %d restaurado", id))
}

func (s *UserService) ToggleStatus(ctx context.Context, id uint, actor *models.User) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == models.StatusActive {
		user.Status = models.StatusInactive
	} else {
		user.Status = models.StatusActive
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, "USER_TOGGLE_STATUS", fmt.Sprintf("Status de %s alterado para %s", user.Email, user.Status))
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string, actor *models.User) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(currentPassword, user.EncryptedPassword) {
		return ErrInvalidPassword
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.audit(ctx, actor, "USER_CHANGE_PASSWORD", "Senha atualizada pelo próprio usuário")
}

func (s *UserService) ForceChangePassword(ctx context.Context, userID uint, newPassword string, actor *models.User) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.audit(ctx, actor, "USER_FORCE_CHANGE_PASSWORD",
		fmt.Sprintf("Senha de %s redefinida por administrador", user.Email))
}

// UpdateAvatar processes an uploaded picture and stores its thumbnail URL
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, thumbPath, err := s.imageSvc.ProcessAndSaveAvatar(file, header)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = &thumbPath
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) audit(ctx context.Context, actor *models.User, action, details string) error {
	e := Entry{Action: action, Details: details}
	if actor != nil {
		e.UserID = &actor.ID
		e.UserName = actor.FullName
		e.UserEmail = actor.Email
	}
	return s.auditSvc.Log(ctx, e)
}
