package masking

import (
	"strings"
	"unicode"
)

// Token replaces hidden characters. Every transform maps its own output to
// itself; only the exact output shapes are recognized, so a raw value that
// merely contains the token is still masked.
const Token = "***"

func MaskName(name string) string {
	if name == Token {
		return name
	}
	r := []rune(name)
	if len(r) <= 2 {
		return Token
	}
	return string(r[0]) + Token + string(r[len(r)-1])
}

func digitsOf(s string) []rune {
	var out []rune
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

func MaskPhone(phone string) string {
	d := digitsOf(phone)
	if len(d) <= 4 {
		return Token
	}
	return string(d[:3]) + Token + string(d[len(d)-2:])
}

func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return Token
	}
	local, domain := []rune(email[:at]), email[at:]
	if string(local) == Token {
		return email
	}
	if len(local) <= 2 {
		return Token + domain
	}
	return string(local[0]) + Token + domain
}

func MaskAddress(address string) string {
	r := []rune(address)
	if len(r) <= 10 {
		return Token
	}
	return string(r[:5]) + Token + string(r[len(r)-5:])
}

// MaskText is the generic transform used for notes.
func MaskText(text string) string {
	r := []rune(text)
	if len(r) <= 5 {
		return Token
	}
	return string(r[:3]) + Token
}

const publicToken = "****"

// PublicPhone is the basic-view phone format. It is a separate scheme from
// MaskPhone and the two must not be merged.
func PublicPhone(phone string) string {
	if phone == Token || hasShape(phone, 3, Token, 2) || hasShape(phone, 3, publicToken, 3) {
		return phone
	}
	d := digitsOf(phone)
	if len(d) < 7 {
		return publicToken
	}
	return string(d[:3]) + publicToken + string(d[len(d)-3:])
}

// PublicEmail is the basic-view email format.
func PublicEmail(email string) string {
	if email == Token {
		return email
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return publicToken
	}
	local := []rune(email[:at])
	if maskedLocal(string(local)) {
		return email
	}
	if len(local) > 2 {
		local = local[:2]
	}
	return string(local) + publicToken + email[at:]
}

// hasShape reports whether s is head digits, then token, then tail digits.
func hasShape(s string, head int, token string, tail int) bool {
	r := []rune(s)
	t := []rune(token)
	if len(r) != head+len(t)+tail || string(r[head:head+len(t)]) != token {
		return false
	}
	for _, c := range append(r[:head:head], r[head+len(t):]...) {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// maskedLocal matches the local parts MaskEmail and PublicEmail produce.
func maskedLocal(local string) bool {
	r := []rune(local)
	switch {
	case local == Token:
		return true
	case len(r) == 4 && string(r[1:]) == Token:
		return true
	case (len(r) == 5 || len(r) == 6) && strings.HasSuffix(local, publicToken):
		return true
	}
	return false
}
