// Package validator holds the input checks shared by the CLI boundary and
// the core domain types.
package validator

import (
	"net"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// Domain validators

// IsDomain verifica si un string es un dominio válido (LDH labels, no IPs).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}

	if !domainRegex.MatchString(domain) {
		return false
	}

	// an IPv4 literal also matches the label regex
	if net.ParseIP(domain) != nil {
		return false
	}

	return true
}

// IsPublicSuffix reports whether domain is itself a public suffix
// ("com", "co.uk", "github.io"), which is never a meaningful scan target.
func IsPublicSuffix(domain string) bool {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return false
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	return suffix == domain
}

// RegistrableDomain returns the eTLD+1 for domain, or domain itself when it
// cannot be computed.
func RegistrableDomain(domain string) string {
	domain = NormalizeDomain(domain)
	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return etld1
}

// NormalizeDomain lower-cases, trims and drops the trailing root dot.
// Unlike URL handling this never strips labels such as "www.".
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimSuffix(domain, ".")
	return domain
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsPort valida que un puerto esté en el rango válido [1-65535].
func IsPort(portStr string) bool {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}

// IsHostPort validates a "host:port" pair as accepted for the intercepting
// proxy. The host may be a domain, an IP literal or "localhost".
func IsHostPort(addr string) bool {
	host, port, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return false
	}
	if !IsPort(port) {
		return false
	}
	if host == "" {
		return false
	}
	return IsIP(host) || IsDomain(host)
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
