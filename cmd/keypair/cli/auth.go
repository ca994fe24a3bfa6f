package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/majorcontext/keypair/internal/config"
	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/log"
	"github.com/majorcontext/keypair/internal/provider"
	"github.com/majorcontext/keypair/internal/ui"
)

var authShowSecret bool

// maxConcurrentAuth bounds how many profiles authenticate at once; the
// keyring strategy may talk to a desktop keychain daemon.
const maxConcurrentAuth = 4

var authCmd = &cobra.Command{
	Use:   "auth [profile...]",
	Short: "Authenticate provider profiles and print their access keys",
	Long: `Authenticate one or more profiles from the provider config and print the
resulting access key ids. With no arguments every profile is authenticated.

The secret access key is redacted unless --show-secret is given.

Examples:
  keypair auth
  keypair auth s3-prod --show-secret --json`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().BoolVar(&authShowSecret, "show-secret", false, "print the secret access key")
	rootCmd.AddCommand(authCmd)
}

// authResult is one row of `keypair auth` output.
type authResult struct {
	Profile         string `json:"profile"`
	Type            string `json:"type,omitempty"`
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
	Error           string `json:"error,omitempty"`

	err error
}

func runAuth(cmd *cobra.Command, args []string) error {
	f, err := loadProviders()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = f.Names()
	}
	if len(names) == 0 {
		ui.Infof("No profiles in %s", ui.ShortenPath(providersPath()))
		return nil
	}

	results := authenticateProfiles(f, names, authShowSecret)

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		writeAuthTable(cmd.OutOrStdout(), results)
	}

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			if !jsonOut {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n%v\n", r.err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed to authenticate", failed, len(results))
	}
	return nil
}

// authenticateProfiles authenticates each named profile concurrently.
// Results are returned in the order of names; failures are recorded per
// row rather than aborting the others.
func authenticateProfiles(f *config.File, names []string, showSecret bool) []authResult {
	results := make([]authResult, len(names))

	var g errgroup.Group
	g.SetLimit(maxConcurrentAuth)
	for i, name := range names {
		g.Go(func() error {
			results[i] = authenticateProfile(f, name, showSecret)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func authenticateProfile(f *config.File, name string, showSecret bool) authResult {
	r := authResult{Profile: name}
	logger := log.ForProfile(name)

	auth, cfg, err := newAuthenticator(f, name)
	if cfg != nil {
		if typ, terr := provider.TypeOf(cfg); terr == nil {
			r.Type = provider.ResolveName(typ)
		}
	}
	if err != nil {
		r.err = err
		r.Error = err.Error()
		logger.Debug("building provider failed", "error", err)
		return r
	}

	creds, err := auth.Authenticate()
	if err != nil {
		r.err = wrapAuthError(name, err)
		r.Error = err.Error()
		logger.Debug("authentication failed", "error", err)
		return r
	}
	logger.Debug("authenticated", "type", r.Type, "access_key_id", creds.AccessKeyID)

	r.AccessKeyID = creds.AccessKeyID
	r.SecretAccessKey = credential.Redact(creds.SecretAccessKey)
	if showSecret {
		r.SecretAccessKey = creds.SecretAccessKey
	}
	return r
}

func writeAuthTable(w io.Writer, results []authResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tTYPE\tACCESS KEY ID\tSECRET\tSTATUS")
	for _, r := range results {
		status := ui.OKTag()
		if r.err != nil {
			status = ui.FailTag()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Profile, dash(r.Type), dash(r.AccessKeyID), dash(r.SecretAccessKey), status)
	}
	tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
