package domain

import "fmt"

// Static country policy table. Adding a country means adding rows here and
// the matching validation rules; no persistence is involved.
var countryMethods = map[string][]PaymentMethod{
	"PT": {MethodMBWay, MethodMultibanco, MethodBankTransfer},
	"BR": {MethodPix, MethodBoleto, MethodBankTransfer},
}

var countryCurrency = map[string]string{
	"PT": "EUR",
	"BR": "BRL",
}

var methodFields = map[string]map[PaymentMethod][]string{
	"PT": {
		MethodMBWay:        {"mbway_phone"},
		MethodMultibanco:   {},
		MethodBankTransfer: {"iban"},
	},
	"BR": {
		MethodPix:          {"pix_key", "pix_key_type"},
		MethodBoleto:       {"bank_name", "bank_routing_number", "bank_account_number"},
		MethodBankTransfer: {"bank_name", "bank_routing_number", "bank_account_number"},
	},
}

func MethodsFor(country string) ([]PaymentMethod, error) {
	methods, ok := countryMethods[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}
	out := make([]PaymentMethod, len(methods))
	copy(out, methods)
	return out, nil
}

func MethodLegal(country string, method PaymentMethod) (bool, error) {
	methods, err := MethodsFor(country)
	if err != nil {
		return false, err
	}
	for _, m := range methods {
		if m == method {
			return true, nil
		}
	}
	return false, nil
}

// RequiredFields lists the config fields a method needs before it can be
// resolved into donation instructions. Multibanco needs none: the entity can
// be platform-provisioned and references are generated per donation.
func RequiredFields(country string, method PaymentMethod) ([]string, error) {
	byMethod, ok := methodFields[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}
	fields, ok := byMethod[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrMethodNotAvailable, method, country)
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out, nil
}

func CurrencyFor(country string) (string, error) {
	currency, ok := countryCurrency[country]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}
	return currency, nil
}
