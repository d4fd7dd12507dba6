package service

import (
	"context"
	"testing"

	"legalpad/internal/contract"
	"legalpad/internal/infrastructure/aws/cognito"
	"legalpad/internal/utils/apierror"
)

type fakeIdentity struct {
	signUpErr  error
	signInErr  error
	confirmErr error
	deleted    []string
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _ string) (string, error) {
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	return "sub-" + email, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, _, _ string) (*cognito.AuthTokens, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &cognito.AuthTokens{AccessToken: "access", IDToken: "id", RefreshToken: "refresh", ExpiresIn: 3600}, nil
}

func (f *fakeIdentity) ConfirmSignUp(_ context.Context, _, _ string) error {
	return f.confirmErr
}

func (f *fakeIdentity) ResendConfirmation(_ context.Context, _ string) error {
	return nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, email string) error {
	f.deleted = append(f.deleted, email)
	return nil
}

func signupRequest(email string) *contract.SignupRequest {
	return &contract.SignupRequest{
		Username: "counsel",
		Email:    email,
		Password: "Sup3r$ecret",
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	identity := &fakeIdentity{}
	env.Users.Identity = identity

	resp, apierr := env.Users.CreateUser(context.Background(), signupRequest("ada@example.com"))
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if resp.EmailVerified {
		t.Error("expected fresh account to be unverified")
	}

	stored, err := env.UserRepo.FindActiveByEmail("ada@example.com")
	if err != nil || stored == nil {
		t.Fatalf("expected persisted user: %v", err)
	}
	if stored.SubUUID != "sub-ada@example.com" {
		t.Errorf("expected identity sub to be mirrored, got %s", stored.SubUUID)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.Users.Identity = &fakeIdentity{}

	ctx := context.Background()
	if _, apierr := env.Users.CreateUser(ctx, signupRequest("ada@example.com")); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if _, apierr := env.Users.CreateUser(ctx, signupRequest("ada@example.com")); apierr != apierror.UserAlreadyExistsError {
		t.Fatalf("expected duplicate email rejection, got %+v", apierr)
	}
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	env.Users.Identity = &fakeIdentity{}

	req := signupRequest("ada@example.com")
	req.Password = "alllowercase"
	if _, apierr := env.Users.CreateUser(context.Background(), req); apierr == nil {
		t.Fatal("expected weak password rejection")
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.Users.Identity = &fakeIdentity{}

	tokens, apierr := env.Users.Login(context.Background(), &contract.LoginRequest{
		Email:    "ada@example.com",
		Password: "Sup3r$ecret",
	})
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if tokens.AccessToken != "access" || tokens.ExpiresIn != 3600 {
		t.Errorf("unexpected token payload: %+v", tokens)
	}
}

func TestConfirmSignup(t *testing.T) {
	env := newTestEnv(t)
	env.Users.Identity = &fakeIdentity{}

	ctx := context.Background()
	if _, apierr := env.Users.CreateUser(ctx, signupRequest("ada@example.com")); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	req := &contract.ConfirmSignupRequest{Email: "ada@example.com", Code: "123456"}
	if apierr := env.Users.ConfirmSignup(ctx, req); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	stored, err := env.UserRepo.FindActiveByEmail("ada@example.com")
	if err != nil || stored == nil {
		t.Fatalf("expected persisted user: %v", err)
	}
	if !stored.EmailVerified {
		t.Error("expected confirmation to mark the email verified")
	}

	if apierr := env.Users.ConfirmSignup(ctx, req); apierr != apierror.UserAlreadyConfirmedError {
		t.Fatalf("expected repeat confirmation rejection, got %+v", apierr)
	}
}

func TestCheckEmail(t *testing.T) {
	env := newTestEnv(t)
	env.Users.Identity = &fakeIdentity{}

	resp, apierr := env.Users.CheckEmail("ada@example.com")
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if resp.Exists {
		t.Error("expected unknown email to be free")
	}

	if _, apierr = env.Users.CreateUser(context.Background(), signupRequest("ada@example.com")); apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}

	resp, apierr = env.Users.CheckEmail("ada@example.com")
	if apierr != nil {
		t.Fatalf("unexpected error: %+v", apierr)
	}
	if !resp.Exists {
		t.Error("expected registered email to be reported taken")
	}
}
