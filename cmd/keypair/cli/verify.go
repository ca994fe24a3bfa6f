package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/majorcontext/keypair/internal/awscreds"
	"github.com/majorcontext/keypair/internal/ui"
)

var (
	verifyRegion  string
	verifyTimeout time.Duration
)

var verifyCmd = &cobra.Command{
	Use:   "verify <profile>",
	Short: "Check a profile's access key against AWS STS",
	Long: `Authenticate the profile and call sts:GetCallerIdentity with the result.
This is the only command that contacts AWS.

Examples:
  keypair verify s3-prod
  keypair verify s3-prod --region eu-west-1`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyRegion, "region", awscreds.DefaultRegion, "AWS region for the STS endpoint")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 30*time.Second, "maximum time to wait for STS")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	profile := args[0]

	f, err := loadProviders()
	if err != nil {
		return err
	}
	auth, _, err := newAuthenticator(f, profile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, verifyTimeout)
		defer cancel()
	}

	id, err := awscreds.Verify(ctx, auth, verifyRegion)
	if err != nil {
		return wrapAuthError(profile, err)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(id)
	}
	fmt.Fprintf(out, "%s %s\n", ui.OKTag(), ui.Bold(profile))
	fmt.Fprintf(out, "  account: %s\n", id.Account)
	fmt.Fprintf(out, "  arn:     %s\n", id.ARN)
	fmt.Fprintf(out, "  user id: %s\n", id.UserID)
	return nil
}
