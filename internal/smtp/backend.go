package smtp

import (
	"crypto/tls"
	"log/slog"
	"net"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/welldanyogia/inboxzero/internal/logger"
	"github.com/welldanyogia/inboxzero/internal/repository"
	"github.com/welldanyogia/inboxzero/internal/services"
)

// Security limits
const (
	DefaultMaxMessageSize = 25 * 1024 * 1024 // 25 MB
	DefaultMaxRecipients  = 100
	DefaultReadTimeout    = 60 * time.Second
	DefaultWriteTimeout   = 60 * time.Second
	DefaultMaxLineLength  = 2000
)

// Backend implements the go-smtp Backend interface.
// Mail is accepted only for addresses that belong to registered users.
type Backend struct {
	users    repository.UserRepository
	emails   repository.EmailRepository
	notifier services.Notifier
	security *logger.SecurityLogger
	logger   *slog.Logger
}

// BackendConfig holds configuration for the SMTP backend
type BackendConfig struct {
	Users    repository.UserRepository
	Emails   repository.EmailRepository
	Notifier services.Notifier
	Security *logger.SecurityLogger
	Logger   *slog.Logger
}

// NewBackend creates a new SMTP backend
func NewBackend(cfg *BackendConfig) *Backend {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		users:    cfg.Users,
		emails:   cfg.Emails,
		notifier: cfg.Notifier,
		security: cfg.Security,
		logger:   log,
	}
}

// NewSession creates a new SMTP session
func (b *Backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	remote := remoteIP(c.Conn().RemoteAddr())
	b.logger.Debug("new SMTP connection", slog.String("remote_ip", remote))
	return NewSession(b, remote), nil
}

func remoteIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// ServerConfig holds security configuration for the SMTP server
type ServerConfig struct {
	Addr           string
	Domain         string
	MaxMessageSize int64
	MaxRecipients  int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowInsecure  bool
	TLSConfig      *tls.Config
}

// NewSecureServer creates a new SMTP server with security settings.
// Zero limits fall back to the package defaults.
func NewSecureServer(backend *Backend, cfg *ServerConfig) *smtp.Server {
	s := smtp.NewServer(backend)

	s.Addr = cfg.Addr
	s.Domain = cfg.Domain

	s.MaxMessageBytes = orDefault(cfg.MaxMessageSize, DefaultMaxMessageSize)
	s.MaxRecipients = orDefault(cfg.MaxRecipients, DefaultMaxRecipients)
	s.ReadTimeout = orDefault(cfg.ReadTimeout, DefaultReadTimeout)
	s.WriteTimeout = orDefault(cfg.WriteTimeout, DefaultWriteTimeout)

	s.AllowInsecureAuth = cfg.AllowInsecure
	if cfg.TLSConfig != nil {
		s.TLSConfig = cfg.TLSConfig
	}

	// Set max line length to prevent buffer overflow attacks
	s.MaxLineLength = DefaultMaxLineLength

	return s
}

func orDefault[T int | int64 | time.Duration](v, def T) T {
	if v > 0 {
		return v
	}
	return def
}
