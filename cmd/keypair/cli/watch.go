package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/majorcontext/keypair/internal/config"
	"github.com/majorcontext/keypair/internal/credential"
	"github.com/majorcontext/keypair/internal/log"
	"github.com/majorcontext/keypair/internal/metrics"
	"github.com/majorcontext/keypair/internal/provider"
	"github.com/majorcontext/keypair/internal/ui"
)

var watchMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch <profile>",
	Short: "Re-authenticate a profile whenever the provider config changes",
	Long: `Authenticate the profile, then watch the provider config file and
authenticate again after every change. The provider stays bound to the same
configuration, which is refreshed in place, so a failed edit leaves the last
good credentials in place.

With --metrics-addr, authentication counters are served at /metrics.

Examples:
  keypair watch s3-prod
  keypair watch s3-prod --metrics-addr :9310`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(watchCmd)
}

// profileWatcher keeps one profile's provider bound to a configuration
// map that is refreshed from disk.
type profileWatcher struct {
	profile string
	path    string
	cfg     credential.Config
	typ     string
	auth    provider.Authenticator
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func newProfileWatcher(path, profile string, m *metrics.Metrics) (*profileWatcher, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	w := &profileWatcher{
		profile: profile,
		path:    path,
		metrics: m,
		logger:  log.ForProfile(profile),
	}
	cfg, err := f.Profile(profile)
	if err != nil {
		return nil, err
	}
	if err := w.bind(cfg); err != nil {
		return nil, err
	}
	return w, nil
}

// bind constructs the provider over cfg. The map is retained; later
// reloads refresh it in place.
func (w *profileWatcher) bind(cfg credential.Config) error {
	auth, typ, err := w.build(cfg)
	if err != nil {
		return err
	}
	w.cfg = cfg
	w.typ = typ
	w.auth = auth
	return nil
}

// build constructs an instrumented provider over cfg without binding it.
func (w *profileWatcher) build(cfg credential.Config) (provider.Authenticator, string, error) {
	typ, err := provider.TypeOf(cfg)
	if err != nil {
		return nil, "", wrapAuthError(w.profile, err)
	}
	auth, err := provider.New(cfg)
	if err != nil {
		return nil, "", wrapAuthError(w.profile, err)
	}
	return w.metrics.Instrument(w.profile, auth), provider.ResolveName(typ), nil
}

// authenticate runs one authentication and reports the outcome.
func (w *profileWatcher) authenticate() (credential.Credentials, error) {
	creds, err := w.auth.Authenticate()
	if err != nil {
		w.logger.Warn("authentication failed", "error", err)
		return credential.Credentials{}, err
	}
	w.logger.Info("authenticated", "type", w.typ, "access_key_id", creds.AccessKeyID)
	return creds, nil
}

// reload re-reads the file and refreshes the bound configuration. Invalid
// files are logged and the previous configuration is kept.
func (w *profileWatcher) reload() {
	f, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("reloading provider config", "error", err)
		return
	}
	src, err := f.Profile(w.profile)
	if err != nil {
		w.logger.Warn("reloading provider config", "error", err)
		return
	}

	typ, err := provider.TypeOf(src)
	if err != nil {
		err = wrapAuthError(w.profile, err)
		w.logger.Warn("reloading provider config", "error", err)
		ui.Infof("%s %s %v", ui.FailTag(), w.profile, err)
		return
	}
	if provider.ResolveName(typ) != w.typ {
		w.rebind(src)
		return
	}

	config.Refresh(w.cfg, src)
	w.report(w.authenticate())
}

// rebind switches to a provider of a different type. The new provider is
// only kept once it has authenticated, so the previous one and its last
// good credentials survive a failed edit.
func (w *profileWatcher) rebind(src credential.Config) {
	auth, typ, err := w.build(src)
	if err != nil {
		w.logger.Warn("rebuilding provider", "error", err)
		ui.Infof("%s %s %v", ui.FailTag(), w.profile, err)
		return
	}
	creds, err := auth.Authenticate()
	if err != nil {
		w.logger.Warn("authentication failed", "type", typ, "error", err)
		w.report(credential.Credentials{}, err)
		return
	}
	w.cfg, w.typ, w.auth = src, typ, auth
	w.logger.Info("authenticated", "type", typ, "access_key_id", creds.AccessKeyID)
	w.report(creds, nil)
}

func (w *profileWatcher) report(creds credential.Credentials, err error) {
	if err != nil {
		ui.Infof("%s %s %v", ui.FailTag(), w.profile, err)
		return
	}
	ui.Infof("%s %s %s", ui.OKTag(), w.profile, creds.AccessKeyID)
}

func runWatch(cmd *cobra.Command, args []string) error {
	profile := args[0]
	path := providersPath()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	w, err := newProfileWatcher(path, profile, m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv := &http.Server{
			Addr:              watchMetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "addr", watchMetricsAddr, "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("serving metrics", "addr", watchMetricsAddr)
	}

	if creds, err := w.authenticate(); err == nil {
		ui.Infof("%s %s %s", ui.OKTag(), profile, creds.AccessKeyID)
	} else {
		ui.Warnf("%v", wrapAuthError(profile, err))
	}
	ui.Infof("Watching %s (Ctrl-C to stop)", ui.ShortenPath(path))

	return config.Watch(ctx, path, w.reload)
}
