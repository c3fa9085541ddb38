package config

const (
	// DefaultConfigPath is used when -config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort            = 3000
	defaultEnv             = "development"
	defaultSiteName        = "Storefront"
	defaultContentDir      = "content"
	defaultLogDir          = "logs"
	defaultTokenTTLHours   = 24
	defaultCookieName      = "storefront_token"
	defaultContactLimit    = 5
	defaultContactWindow   = 600
	defaultLoginLimit      = 10
	defaultLoginWindow     = 900
	defaultSMTPPort        = 587
	defaultAuditMinutes    = 60
	defaultPruneReadDays   = 180
	defaultShutdownSeconds = 10
	defaultBackupDir       = "backups"
	defaultBackupKeep      = 14
)
