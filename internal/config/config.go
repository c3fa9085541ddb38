package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath over the defaults, normalizes it
// and validates it. Unknown keys are rejected.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content over the defaults.
func Parse(content []byte) (*AppConfig, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	// An empty file decodes to io.EOF and keeps the defaults.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used for keys the file omits.
func Default() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		SiteName: defaultSiteName,
		Admin: AdminConfig{
			TokenTTLHours:   defaultTokenTTLHours,
			CookieName:      defaultCookieName,
			LoginRateLimit:  defaultLoginLimit,
			LoginRateWindow: defaultLoginWindow,
		},
		Contact: ContactConfig{
			RateLimit:  defaultContactLimit,
			RateWindow: defaultContactWindow,
		},
		Mail: MailConfig{Port: defaultSMTPPort},
		Jobs: JobsConfig{
			AuditIntervalMinutes:  defaultAuditMinutes,
			PruneReadMessagesDays: defaultPruneReadDays,
		},
		Backup:          BackupConfig{Keep: defaultBackupKeep},
		ShutdownTimeout: defaultShutdownSeconds,
	}
}

func (c *AppConfig) normalize() {
	c.Env = normalizeEnv(c.Env)
	if c.SiteName = strings.TrimSpace(c.SiteName); c.SiteName == "" {
		c.SiteName = defaultSiteName
	}
	c.SiteURL = strings.TrimRight(strings.TrimSpace(c.SiteURL), "/")
	c.AllowedOrigins = normalizeOrigins(c.AllowedOrigins)
	c.Paths.Content = strings.TrimSpace(c.Paths.Content)
	c.Paths.Logs = strings.TrimSpace(c.Paths.Logs)
	c.RedisURL = normalizeRedisURL(c.RedisURL)
	c.Admin = normalizeAdmin(c.Admin)
	c.Mail = normalizeMail(c.Mail)
	c.Backup = normalizeBackup(c.Backup)
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownSeconds
	}
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.Env != "development" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("invalid env %q, expected development, production or test", c.Env)
	}
	if c.SiteURL != "" {
		u, err := url.Parse(c.SiteURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid site_url %q", c.SiteURL)
		}
	}
	if c.Contact.RateLimit < 0 || c.Contact.RateWindow < 0 {
		return errors.New("contact rate limit settings must not be negative")
	}
	if c.Admin.LoginRateLimit < 0 || c.Admin.LoginRateWindow < 0 {
		return errors.New("admin login rate limit settings must not be negative")
	}
	if c.Jobs.AuditIntervalMinutes < 0 || c.Jobs.PruneReadMessagesDays < 0 {
		return errors.New("job settings must not be negative")
	}
	if c.Backup.Keep < 0 || c.Backup.IntervalHours < 0 {
		return errors.New("backup settings must not be negative")
	}
	if s3 := c.Backup.S3; s3.Enable && (s3.Bucket == "" || s3.Region == "" || s3.AccessKeyID == "" || s3.SecretAccessKey == "") {
		return errors.New("backup.s3 needs bucket, region, access_key_id and secret_access_key")
	}
	if c.Mail.Enable {
		if len(c.Mail.To) == 0 {
			return errors.New("mail.to is required when mail is enabled")
		}
		if c.Mail.UseResend && c.Mail.ResendKey == "" {
			return errors.New("mail.resend_key is required when use_resend is set")
		}
		if !c.Mail.UseResend && c.Mail.Host == "" {
			return errors.New("mail.host is required for smtp delivery")
		}
	}
	if !c.IsDev() && c.Admin.JWTSecret == "" {
		return errors.New("admin.jwt_secret is required outside development")
	}
	if !c.IsDev() && len(c.AllowedOrigins) == 0 {
		return errors.New("allowed_origins is required outside development")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// AdminEnabled reports whether an admin password is configured.
func (c *AppConfig) AdminEnabled() bool {
	return c.Admin.PasswordHash != ""
}

func (c *AppConfig) ContentDir() string {
	return ResolveRuntimePath(c.Paths.Content, defaultContentDir)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", defaultLogDir)
	}
	return ResolveRuntimePath(c.Paths.Logs, defaultLogDir)
}

func (c *AppConfig) BackupDir() string {
	return ResolveRuntimePath(c.Backup.Dir, defaultBackupDir)
}

func (c *AppConfig) TokenTTL() time.Duration {
	return time.Duration(c.Admin.TokenTTLHours) * time.Hour
}

func (c *AppConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}
