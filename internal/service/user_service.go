package service

import (
	"context"

	"legalpad/internal/contract"
	"legalpad/internal/domain/entity"
	"legalpad/internal/infrastructure/aws/cognito"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"
	"legalpad/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindActiveBySub(sub string) (*entity.User, error)
	FindActiveByEmail(email string) (*entity.User, error)
	ExistsActiveByEmail(email string) (bool, error)
	Save(user *entity.User) error
}

type DefaultUserService struct {
	UserRepo UserRepository
	Identity cognito.IdentityClient
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, identity cognito.IdentityClient, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{
		UserRepo: userRepo,
		Identity: identity,
		Validate: validate,
	}
}

// CreateUser registers the account with the identity provider first, then
// mirrors it locally. A failed local write rolls the provider record back so
// the email is not burned.
func (s *DefaultUserService) CreateUser(ctx context.Context, req *contract.SignupRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	exists, err := s.UserRepo.ExistsActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check email %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}
	if exists {
		return nil, apierror.UserAlreadyExistsError
	}

	sub, cerr := s.Identity.SignUp(ctx, req.Email, req.Password)
	if cerr != nil {
		return nil, utils.MapCognitoError(cerr)
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:        uid.Generate(),
		SubUUID:   sub,
		Username:  req.Username,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if serr := s.UserRepo.Save(user); serr != nil {
		log.Errorf("failed to persist user %s, rolling back identity record: %v", req.Email, serr)
		if derr := s.Identity.DeleteUser(ctx, req.Email); derr != nil {
			log.Errorf("rollback of identity record %s failed: %v", req.Email, derr)
		}
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

func (s *DefaultUserService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	tokens, cerr := s.Identity.SignIn(ctx, req.Email, req.Password)
	if cerr != nil {
		return nil, utils.MapCognitoError(cerr)
	}

	return &contract.LoginResponse{
		AccessToken:  tokens.AccessToken,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

func (s *DefaultUserService) ConfirmSignup(ctx context.Context, req *contract.ConfirmSignupRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	user, err := s.UserRepo.FindActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", req.Email, err)
		return apierror.InternalServerError
	}
	if user == nil {
		return apierror.NotFoundError
	}
	if user.EmailVerified {
		return apierror.UserAlreadyConfirmedError
	}

	if cerr := s.Identity.ConfirmSignUp(ctx, req.Email, req.Code); cerr != nil {
		return utils.MapCognitoError(cerr)
	}

	user.EmailVerified = true
	user.UpdatedAt = utils.NowUTC()
	if serr := s.UserRepo.Save(user); serr != nil {
		log.Errorf("failed to persist confirmation of user %s: %v", req.Email, serr)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultUserService) ResendConfirmation(ctx context.Context, req *contract.ResendConfirmationRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	user, err := s.UserRepo.FindActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", req.Email, err)
		return apierror.InternalServerError
	}
	if user == nil {
		return apierror.NotFoundError
	}
	if user.EmailVerified {
		return apierror.UserAlreadyConfirmedError
	}

	if cerr := s.Identity.ResendConfirmation(ctx, req.Email); cerr != nil {
		return utils.MapCognitoError(cerr)
	}
	return nil
}

func (s *DefaultUserService) CheckEmail(email string) (*contract.CheckEmailResponse, apierror.ErrorResponse) {
	exists, err := s.UserRepo.ExistsActiveByEmail(email)
	if err != nil {
		log.Errorf("failed to check email %s: %v", email, err)
		return nil, apierror.InternalServerError
	}
	return &contract.CheckEmailResponse{Exists: exists}, nil
}

func (s *DefaultUserService) GetCurrentUser(actor *entity.User) *contract.UserResponse {
	return toUserResponse(actor)
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     utils.FormatEpoch(user.CreatedAt),
	}
}
