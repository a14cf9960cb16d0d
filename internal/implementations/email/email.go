package email

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type RecoveryTokenSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender           string
	recoveryTemplate string
	recoveryBaseUrl  url.URL
	tokenLifetime    time.Duration
}

func NewRecoveryTokenSender(
	awsConfig aws.Config,
	sender string,
	recoveryTemplate string,
	recoveryBaseUrl url.URL,
	tokenLifetime time.Duration,
) *RecoveryTokenSender {
	return &RecoveryTokenSender{
		ses:              ses.NewFromConfig(awsConfig),
		sender:           sender,
		recoveryTemplate: recoveryTemplate,
		recoveryBaseUrl:  recoveryBaseUrl,
		tokenLifetime:    tokenLifetime,
	}
}

func (s *RecoveryTokenSender) SendToken(ctx context.Context, u user.User, token recovery.Token) error {
	templateParamsBytes, err := json.Marshal(
		recoveryTemplateParams{
			RecoveryUrl:      s.recoveryBaseUrl.JoinPath(string(token)).String(),
			ExpiresInMinutes: int(s.tokenLifetime.Minutes()),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.recoveryTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type recoveryTemplateParams struct {
	RecoveryUrl      string `json:"recoveryUrl"`
	ExpiresInMinutes int    `json:"expiresInMinutes"`
}
