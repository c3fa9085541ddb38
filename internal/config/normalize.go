package config

import "strings"

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func normalizeRedisURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeAdmin(a AdminConfig) AdminConfig {
	a.PasswordHash = strings.TrimSpace(a.PasswordHash)
	a.JWTSecret = strings.TrimSpace(a.JWTSecret)
	a.CookieName = strings.TrimSpace(a.CookieName)
	if a.CookieName == "" {
		a.CookieName = defaultCookieName
	}
	if a.TokenTTLHours <= 0 {
		a.TokenTTLHours = defaultTokenTTLHours
	}
	return a
}

func normalizeMail(m MailConfig) MailConfig {
	m.Host = strings.TrimSpace(m.Host)
	m.User = strings.TrimSpace(m.User)
	m.From = strings.TrimSpace(m.From)
	m.ReplyTo = strings.TrimSpace(m.ReplyTo)
	m.ResendKey = strings.TrimSpace(m.ResendKey)
	if m.Port == 0 {
		m.Port = defaultSMTPPort
	}
	to := make([]string, 0, len(m.To))
	for _, addr := range m.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	m.To = to
	return m
}

func normalizeBackup(b BackupConfig) BackupConfig {
	b.Dir = strings.TrimSpace(b.Dir)
	b.S3.Endpoint = strings.TrimRight(strings.TrimSpace(b.S3.Endpoint), "/")
	b.S3.Region = strings.TrimSpace(b.S3.Region)
	b.S3.Bucket = strings.TrimSpace(b.S3.Bucket)
	b.S3.AccessKeyID = strings.TrimSpace(b.S3.AccessKeyID)
	b.S3.SecretAccessKey = strings.TrimSpace(b.S3.SecretAccessKey)
	b.S3.Prefix = strings.Trim(strings.TrimSpace(b.S3.Prefix), "/")
	if b.S3.Endpoint != "" && !strings.HasPrefix(b.S3.Endpoint, "http://") && !strings.HasPrefix(b.S3.Endpoint, "https://") {
		b.S3.Endpoint = "https://" + b.S3.Endpoint
	}
	return b
}
