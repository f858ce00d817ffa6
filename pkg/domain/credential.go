package domain

// Credential is an access token handed out by a data provider. It lives for a
// single fetch workflow and is never written anywhere.
type Credential struct {
	value string
}

// NewCredential wraps the given token value.
func NewCredential(value string) Credential {
	return Credential{value: value}
}

// Value returns the raw token, for use in request bodies only.
func (c Credential) Value() string {
	return c.value
}

// IsZero reports whether no token is held.
func (c Credential) IsZero() bool {
	return c.value == ""
}

// String never prints the token, so a Credential is safe in log lines.
func (c Credential) String() string {
	if c.value == "" {
		return "credential(empty)"
	}
	return "credential(redacted)"
}
