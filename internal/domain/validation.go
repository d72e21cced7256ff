package domain

import (
	"fmt"
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

var (
	countryPattern     = regexp.MustCompile(`^[A-Z]{2}$`)
	ptIBANPattern      = regexp.MustCompile(`^PT\d{23}$`)
	ptMobilePattern    = regexp.MustCompile(`^(\+351)?9[1236]\d{7}$`)
	cpfPattern         = regexp.MustCompile(`^\d{11}$`)
	cnpjPattern        = regexp.MustCompile(`^\d{14}$`)
	e164Pattern        = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)
	randomKeyPattern   = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	bankRoutingPattern = regexp.MustCompile(`^\d{3,8}$`)
	bankAccountPattern = regexp.MustCompile(`^\d{4,13}(-\d)?$`)
	mbEntityPattern    = regexp.MustCompile(`^\d{5}$`)
	amountPattern      = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

const (
	pixKeyMinLen = 11
	pixKeyMaxLen = 77
)

func NormalizeCountry(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func ValidateIBAN(country, iban string) error {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if country == "PT" && !ptIBANPattern.MatchString(iban) {
		return fmt.Errorf("%w: iban must match PT format (PT + 23 digits)", ErrInvalidInput)
	}
	if !ibanChecksumOK(iban) {
		return fmt.Errorf("%w: iban checksum failed", ErrInvalidInput)
	}
	return nil
}

// ibanChecksumOK runs the ISO 13616 mod-97 check: move the first four
// characters to the end, map letters to numbers (A=10..Z=35), remainder 1.
func ibanChecksumOK(iban string) bool {
	if len(iban) < 5 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			n := int(r-'A') + 10
			rem = (rem*100 + n) % 97
		default:
			return false
		}
	}
	return rem == 1
}

func ValidateMBWayPhone(phone string) error {
	if !ptMobilePattern.MatchString(strings.ReplaceAll(phone, " ", "")) {
		return fmt.Errorf("%w: mbway_phone must be a portuguese mobile number", ErrInvalidInput)
	}
	return nil
}

func ValidatePixKey(key string, keyType PixKeyType) error {
	if len(key) < pixKeyMinLen || len(key) > pixKeyMaxLen {
		return fmt.Errorf("%w: pix_key must be %d-%d characters", ErrInvalidInput, pixKeyMinLen, pixKeyMaxLen)
	}
	switch keyType {
	case PixKeyCPF:
		if !cpfPattern.MatchString(key) {
			return fmt.Errorf("%w: pix_key of type cpf must be 11 digits", ErrInvalidInput)
		}
	case PixKeyCNPJ:
		if !cnpjPattern.MatchString(key) {
			return fmt.Errorf("%w: pix_key of type cnpj must be 14 digits", ErrInvalidInput)
		}
	case PixKeyEmail:
		if _, err := mail.ParseAddress(key); err != nil {
			return fmt.Errorf("%w: pix_key of type email is not a valid address", ErrInvalidInput)
		}
	case PixKeyPhone:
		if !e164Pattern.MatchString(key) {
			return fmt.Errorf("%w: pix_key of type phone must be E.164", ErrInvalidInput)
		}
	case PixKeyRandom:
		if !randomKeyPattern.MatchString(key) {
			return fmt.Errorf("%w: pix_key of type random contains invalid characters", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: pix_key_type must be one of cpf, cnpj, email, phone, random", ErrInvalidInput)
	}
	return nil
}

func ValidateBankFields(name, routing, account string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: bank_name is required", ErrInvalidInput)
	}
	if !bankRoutingPattern.MatchString(routing) {
		return fmt.Errorf("%w: bank_routing_number must be 3-8 digits", ErrInvalidInput)
	}
	if !bankAccountPattern.MatchString(account) {
		return fmt.Errorf("%w: bank_account_number is not a valid account", ErrInvalidInput)
	}
	return nil
}

// ValidatePaymentConfig checks every populated field against its country's
// format rules and rejects fields that do not apply to the declared country.
// Pure validation; the caller persists.
func ValidatePaymentConfig(cfg PaymentConfig) error {
	country := NormalizeCountry(cfg.Country)
	if !countryPattern.MatchString(country) {
		return fmt.Errorf("%w: country must be ISO 3166-1 alpha-2", ErrInvalidInput)
	}
	if _, ok := countryMethods[country]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}

	switch country {
	case "PT":
		if cfg.PixKey != "" || cfg.PixKeyType != "" || cfg.BankName != "" ||
			cfg.BankRoutingNumber != "" || cfg.BankAccountNumber != "" {
			return fmt.Errorf("%w: brazilian fields are not applicable to a PT ong", ErrInvalidInput)
		}
		if cfg.MBWayPhone != "" {
			if err := ValidateMBWayPhone(cfg.MBWayPhone); err != nil {
				return err
			}
		}
		if cfg.IBAN != "" {
			if err := ValidateIBAN(country, cfg.IBAN); err != nil {
				return err
			}
		}
		if cfg.MultibancoEntity != "" && !mbEntityPattern.MatchString(cfg.MultibancoEntity) {
			return fmt.Errorf("%w: multibanco_entity must be 5 digits", ErrInvalidInput)
		}
	case "BR":
		if cfg.MBWayPhone != "" || cfg.IBAN != "" || cfg.MultibancoEntity != "" {
			return fmt.Errorf("%w: portuguese fields are not applicable to a BR ong", ErrInvalidInput)
		}
		if cfg.PixKey != "" || cfg.PixKeyType != "" {
			if cfg.PixKey == "" || cfg.PixKeyType == "" {
				return fmt.Errorf("%w: pix_key and pix_key_type must be set together", ErrInvalidInput)
			}
			if err := ValidatePixKey(cfg.PixKey, cfg.PixKeyType); err != nil {
				return err
			}
		}
		if cfg.BankName != "" || cfg.BankRoutingNumber != "" || cfg.BankAccountNumber != "" {
			if err := ValidateBankFields(cfg.BankName, cfg.BankRoutingNumber, cfg.BankAccountNumber); err != nil {
				return err
			}
		}
	}
	return nil
}

// MethodConfigured reports whether every config field the method requires is
// populated. Methods with no required fields (multibanco) count as configured.
func MethodConfigured(cfg PaymentConfig, method PaymentMethod) bool {
	fields, err := RequiredFields(NormalizeCountry(cfg.Country), method)
	if err != nil {
		return false
	}
	for _, field := range fields {
		if configField(cfg, field) == "" {
			return false
		}
	}
	return true
}

// RecomputeConfigured derives the cached Configured flag from the raw fields:
// true when at least one country field backing a method is populated.
func RecomputeConfigured(cfg PaymentConfig) bool {
	switch NormalizeCountry(cfg.Country) {
	case "PT":
		return cfg.MBWayPhone != "" || cfg.IBAN != "" || cfg.MultibancoEntity != ""
	case "BR":
		return (cfg.PixKey != "" && cfg.PixKeyType != "") ||
			(cfg.BankName != "" && cfg.BankRoutingNumber != "" && cfg.BankAccountNumber != "")
	default:
		return false
	}
}

func configField(cfg PaymentConfig, field string) string {
	switch field {
	case "mbway_phone":
		return cfg.MBWayPhone
	case "iban":
		return cfg.IBAN
	case "pix_key":
		return cfg.PixKey
	case "pix_key_type":
		return string(cfg.PixKeyType)
	case "bank_name":
		return cfg.BankName
	case "bank_routing_number":
		return cfg.BankRoutingNumber
	case "bank_account_number":
		return cfg.BankAccountNumber
	default:
		return ""
	}
}

// ParseAmount converts a decimal money string ("25", "25.5", "25.00") into
// cents. Donations never carry fractions of a cent.
func ParseAmount(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if !amountPattern.MatchString(v) {
		return 0, fmt.Errorf("%w: amount must be a positive decimal with at most 2 places", ErrInvalidInput)
	}
	whole, frac, _ := strings.Cut(v, ".")
	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || cents > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidInput)
	}
	cents *= 100
	if frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		f, _ := strconv.ParseInt(frac, 10, 64)
		cents += f
	}
	if cents <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}
	return cents, nil
}

func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func ValidateDonorName(v string) error {
	trimmed := strings.TrimSpace(v)
	if len(trimmed) < 2 || len(trimmed) > 100 {
		return fmt.Errorf("%w: donor_name must be 2-100 chars", ErrInvalidInput)
	}
	return nil
}

func ValidateEmail(v string) error {
	if _, err := mail.ParseAddress(v); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}
