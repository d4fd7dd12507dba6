package cognito

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// AuthTokens is the credential set Cognito hands back on a successful login.
type AuthTokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	ExpiresIn    int32
}

// IdentityClient is the slice of the identity provider the user service
// needs. Errors come back raw; callers translate them with
// utils.MapCognitoError.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (sub string, err error)
	SignIn(ctx context.Context, email, password string) (*AuthTokens, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
	DeleteUser(ctx context.Context, email string) error
}

type cognitoClient struct {
	client   *cognitoidentityprovider.Client
	clientID string
	poolID   string
}

func NewIdentityClient(ctx context.Context) (IdentityClient, error) {
	clientID := os.Getenv("COGNITO_CLIENT_ID")
	poolID := os.Getenv("COGNITO_USER_POOL_ID")
	if clientID == "" || poolID == "" {
		return nil, errors.New("COGNITO_CLIENT_ID and COGNITO_USER_POOL_ID must be set")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &cognitoClient{
		client:   cognitoidentityprovider.NewFromConfig(cfg),
		clientID: clientID,
		poolID:   poolID,
	}, nil
}

func (c *cognitoClient) SignUp(ctx context.Context, email, password string) (string, error) {
	out, err := c.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: &c.clientID,
		Username: &email,
		Password: &password,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: &email},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.UserSub), nil
}

func (c *cognitoClient) SignIn(ctx context.Context, email, password string) (*AuthTokens, error) {
	out, err := c.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId: &c.clientID,
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, err
	}

	result := out.AuthenticationResult
	if result == nil {
		return nil, errors.New("authentication produced no tokens, a challenge is likely pending")
	}

	return &AuthTokens{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

func (c *cognitoClient) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.client.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         &c.clientID,
		Username:         &email,
		ConfirmationCode: &code,
	})
	return err
}

func (c *cognitoClient) ResendConfirmation(ctx context.Context, email string) error {
	_, err := c.client.ResendConfirmationCode(ctx, &cognitoidentityprovider.ResendConfirmationCodeInput{
		ClientId: &c.clientID,
		Username: &email,
	})
	return err
}

// DeleteUser removes the identity record. Used to roll back a signup whose
// local persistence failed.
func (c *cognitoClient) DeleteUser(ctx context.Context, email string) error {
	_, err := c.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: &c.poolID,
		Username:   &email,
	})
	return err
}
