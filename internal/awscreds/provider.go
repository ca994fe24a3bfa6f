// Package awscreds adapts credential strategies to the AWS SDK.
//
// CredentialsProvider satisfies aws.CredentialsProvider so any configured
// strategy can sign SDK requests; Verify uses it to ask STS who the keys
// belong to.
package awscreds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/majorcontext/keypair/internal/provider"
)

// Source is reported in aws.Credentials.Source.
const Source = "keypair"

// CredentialsProvider implements aws.CredentialsProvider over an Authenticator.
type CredentialsProvider struct {
	auth provider.Authenticator
}

var _ aws.CredentialsProvider = (*CredentialsProvider)(nil)

// NewCredentialsProvider returns an adapter for auth.
func NewCredentialsProvider(auth provider.Authenticator) *CredentialsProvider {
	return &CredentialsProvider{auth: auth}
}

// Retrieve authenticates on every call. Wrap the provider in
// aws.NewCredentialsCache to avoid re-reading configuration per request.
func (p *CredentialsProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return aws.Credentials{}, err
	}
	creds, err := p.auth.Authenticate()
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("retrieving credentials: %w", err)
	}
	return aws.Credentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		Source:          Source,
		CanExpire:       false,
	}, nil
}
