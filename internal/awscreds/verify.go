package awscreds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/majorcontext/keypair/internal/provider"
)

// DefaultRegion is used when no region is given.
const DefaultRegion = "us-east-1"

// Identity is the caller identity STS reports for a key pair.
type Identity struct {
	Account   string `json:"account"`
	ARN       string `json:"arn"`
	UserID    string `json:"user_id"`
	Partition string `json:"partition,omitempty"`
}

// CallerIdentityAPI is the STS operation Verify needs.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// NewSTSClient builds an STS client that signs with auth's credentials.
// Shared config files and environment credentials are not consulted for
// keys; only region and endpoint settings are loaded from them.
func NewSTSClient(ctx context.Context, auth provider.Authenticator, region string) (*sts.Client, error) {
	if region == "" {
		region = DefaultRegion
	}
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(aws.NewCredentialsCache(NewCredentialsProvider(auth))),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return sts.NewFromConfig(awsCfg), nil
}

// Verify asks STS for the identity behind auth's credentials.
func Verify(ctx context.Context, auth provider.Authenticator, region string) (*Identity, error) {
	client, err := NewSTSClient(ctx, auth, region)
	if err != nil {
		return nil, err
	}
	return VerifyWith(ctx, client)
}

// VerifyWith calls GetCallerIdentity on client.
func VerifyWith(ctx context.Context, client CallerIdentityAPI) (*Identity, error) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("getting caller identity: %w", err)
	}

	id := &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}
	if parsed, err := arn.Parse(id.ARN); err == nil {
		id.Partition = parsed.Partition
	}
	return id, nil
}
