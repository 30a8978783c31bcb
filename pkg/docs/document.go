// Package docs validates Brazilian taxpayer documents (CPF and CNPJ) using
// their official check-digit algorithms.
package docs

import "strings"

// Normalize strips the usual formatting punctuation from a document number.
func Normalize(number string) string {
	replacer := strings.NewReplacer(".", "", "-", "", "/", "", " ", "")
	return replacer.Replace(number)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// IsValidCPF checks the 11-digit CPF check digits. Accepts formatted
// (000.000.000-00) or bare input.
func IsValidCPF(number string) bool {
	cpf := Normalize(number)
	if len(cpf) != 11 || !allDigits(cpf) || allSame(cpf) {
		return false
	}
	for _, pos := range []int{9, 10} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(cpf[i]-'0') * (pos + 1 - i)
		}
		digit := (sum * 10) % 11 % 10
		if digit != int(cpf[pos]-'0') {
			return false
		}
	}
	return true
}

var cnpjWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// IsValidCNPJ checks the 14-digit CNPJ check digits. Accepts formatted
// (00.000.000/0000-00) or bare input.
func IsValidCNPJ(number string) bool {
	cnpj := Normalize(number)
	if len(cnpj) != 14 || !allDigits(cnpj) || allSame(cnpj) {
		return false
	}
	for _, pos := range []int{12, 13} {
		sum := 0
		offset := len(cnpjWeights) - pos
		for i := 0; i < pos; i++ {
			sum += int(cnpj[i]-'0') * cnpjWeights[offset+i]
		}
		digit := sum % 11
		if digit < 2 {
			digit = 0
		} else {
			digit = 11 - digit
		}
		if digit != int(cnpj[pos]-'0') {
			return false
		}
	}
	return true
}

// IsValid dispatches on length after normalization: 11 digits validate as
// CPF, 14 as CNPJ.
func IsValid(number string) bool {
	switch len(Normalize(number)) {
	case 11:
		return IsValidCPF(number)
	case 14:
		return IsValidCNPJ(number)
	default:
		return false
	}
}
