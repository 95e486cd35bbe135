package email

import (
	"strings"
	"unicode"

	derrors "boardkeep/pkg/domain-errors"
)

// Normalize trims whitespace and lowercases an address. Emails act as keys
// for identities and sharing edges, so every caller must normalize before
// comparing or storing.
func Normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// Validate performs a syntactic check: one '@' with non-empty local part and
// a domain containing a dot. Deliverability is not our problem.
func Validate(addr string) error {
	at := strings.IndexByte(addr, '@')
	if at <= 0 || at == len(addr)-1 {
		return derrors.New(derrors.CodeValidation, "malformed email address")
	}
	domain := addr[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return derrors.New(derrors.CodeValidation, "malformed email domain")
	}
	if strings.ContainsAny(addr, " \t\n") {
		return derrors.New(derrors.CodeValidation, "email must not contain whitespace")
	}
	return nil
}

// DisplayName derives a human-readable name from the local part of an
// address, e.g. "ada.lovelace@x.com" -> "Ada Lovelace".
func DisplayName(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at > 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "User"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
