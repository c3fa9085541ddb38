package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"` // "development" | "production"
	SiteName       string        `yaml:"site_name"`
	SiteURL        string        `yaml:"site_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Paths          PathsConfig   `yaml:"paths"`
	Admin          AdminConfig   `yaml:"admin"`
	RedisURL       string        `yaml:"redis_url"`
	Contact        ContactConfig `yaml:"contact"`
	Mail           MailConfig    `yaml:"mail"`
	Jobs           JobsConfig    `yaml:"jobs"`
	Backup         BackupConfig  `yaml:"backup"`

	// ShutdownTimeout bounds graceful shutdown, in seconds.
	ShutdownTimeout int `yaml:"shutdown_timeout_seconds"`
}

type PathsConfig struct {
	Content string `yaml:"content"`
	Logs    string `yaml:"logs"`
}

type AdminConfig struct {
	// PasswordHash is a bcrypt hash of the admin password.
	PasswordHash  string `yaml:"password_hash"`
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	CookieName    string `yaml:"cookie_name"`
	// LoginRateLimit attempts per LoginRateWindow seconds and client IP.
	LoginRateLimit  int `yaml:"login_rate_limit"`
	LoginRateWindow int `yaml:"login_rate_window_seconds"`
}

type ContactConfig struct {
	RateLimit  int `yaml:"rate_limit"`
	RateWindow int `yaml:"rate_window_seconds"`
}

type MailConfig struct {
	Enable    bool     `yaml:"enable"`
	Host      string   `yaml:"host"`
	Port      int      `yaml:"port"`
	User      string   `yaml:"user"`
	Pass      string   `yaml:"pass"`
	From      string   `yaml:"from"`
	To        []string `yaml:"to"`
	ReplyTo   string   `yaml:"reply_to"`
	UseResend bool     `yaml:"use_resend"`
	ResendKey string   `yaml:"resend_key"`
}

type JobsConfig struct {
	// AuditIntervalMinutes schedules the content audit; 0 disables it.
	AuditIntervalMinutes int `yaml:"audit_interval_minutes"`
	// PruneReadMessagesDays deletes read messages older than this; 0 keeps them.
	PruneReadMessagesDays int `yaml:"prune_read_messages_days"`
}

type BackupConfig struct {
	// Dir holds local archives; relative paths resolve like paths.content.
	Dir string `yaml:"dir"`
	// Keep is how many local archives survive a run; 0 keeps all.
	Keep int `yaml:"keep"`
	// IntervalHours schedules the backup job; 0 disables it.
	IntervalHours int      `yaml:"interval_hours"`
	S3            S3Config `yaml:"s3"`
}

// S3Config targets any S3 compatible bucket.
type S3Config struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
}
