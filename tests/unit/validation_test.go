package unit

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/adotaqui/platform-service/internal/domain"
)

func TestValidateIBAN(t *testing.T) {
	t.Parallel()

	if err := domain.ValidateIBAN("PT", "PT50000201231234567890154"); err != nil {
		t.Fatalf("valid PT iban rejected: %v", err)
	}
	if err := domain.ValidateIBAN("PT", "PT50 0002 0123 1234 5678 9015 4"); err != nil {
		t.Fatalf("spaced iban should normalize: %v", err)
	}
	if err := domain.ValidateIBAN("PT", "PT5000020123"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short iban, got %v", err)
	}
	// wrong check digits
	if err := domain.ValidateIBAN("PT", "PT51000201231234567890154"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected checksum failure, got %v", err)
	}
	if err := domain.ValidateIBAN("PT", "ES9121000418450200051332"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("foreign iban must be rejected for a PT ong, got %v", err)
	}
}

func TestValidateMBWayPhone(t *testing.T) {
	t.Parallel()

	for _, phone := range []string{"912345678", "+351912345678", "936123456"} {
		if err := domain.ValidateMBWayPhone(phone); err != nil {
			t.Fatalf("valid phone %q rejected: %v", phone, err)
		}
	}
	for _, phone := range []string{"812345678", "91234567", "9123456789", "11987654321"} {
		if err := domain.ValidateMBWayPhone(phone); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected rejection for %q, got %v", phone, err)
		}
	}
}

func TestValidatePixKeyLengthBounds(t *testing.T) {
	t.Parallel()

	if err := domain.ValidatePixKey(strings.Repeat("a", 10), domain.PixKeyRandom); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("10-char key must fail, got %v", err)
	}
	if err := domain.ValidatePixKey(strings.Repeat("a", 11), domain.PixKeyRandom); err != nil {
		t.Fatalf("11-char key must pass: %v", err)
	}
	if err := domain.ValidatePixKey(strings.Repeat("a", 77), domain.PixKeyRandom); err != nil {
		t.Fatalf("77-char key must pass: %v", err)
	}
	if err := domain.ValidatePixKey(strings.Repeat("a", 78), domain.PixKeyRandom); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("78-char key must fail, got %v", err)
	}
}

func TestValidatePixKeyShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key     string
		keyType domain.PixKeyType
		wantErr bool
	}{
		{"12345678901", domain.PixKeyCPF, false},
		{"1234567890a", domain.PixKeyCPF, true},
		{"12345678000195", domain.PixKeyCNPJ, false},
		{"donations@abrigo.org.br", domain.PixKeyEmail, false},
		{"not-an-email", domain.PixKeyEmail, true},
		{"+5511987654321", domain.PixKeyPhone, false},
		{"11987654321", domain.PixKeyPhone, true},
		{"123e4567-e89b-12d3-a456-426614174000", domain.PixKeyRandom, false},
		{"12345678901", "cep", true},
	}
	for _, tc := range cases {
		err := domain.ValidatePixKey(tc.key, tc.keyType)
		if tc.wantErr && !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("key %q type %s: expected ErrInvalidInput, got %v", tc.key, tc.keyType, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("key %q type %s: unexpected error %v", tc.key, tc.keyType, err)
		}
	}
}

func TestValidatePaymentConfigCountryGate(t *testing.T) {
	t.Parallel()

	ptWithPix := domain.PaymentConfig{Country: "PT", MBWayPhone: "912345678", PixKey: "12345678901", PixKeyType: domain.PixKeyCPF}
	if err := domain.ValidatePaymentConfig(ptWithPix); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("PT config carrying pix fields must fail, got %v", err)
	}
	brWithIBAN := domain.PaymentConfig{Country: "BR", IBAN: "PT50000201231234567890154"}
	if err := domain.ValidatePaymentConfig(brWithIBAN); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("BR config carrying an iban must fail, got %v", err)
	}
	if err := domain.ValidatePaymentConfig(domain.PaymentConfig{Country: "US"}); !errors.Is(err, domain.ErrUnsupportedCountry) {
		t.Fatalf("expected ErrUnsupportedCountry, got %v", err)
	}
	pixOnly := domain.PaymentConfig{Country: "BR", PixKey: "12345678901"}
	if err := domain.ValidatePaymentConfig(pixOnly); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("pix_key without pix_key_type must fail, got %v", err)
	}
}

func TestRecomputeConfigured(t *testing.T) {
	t.Parallel()

	if domain.RecomputeConfigured(domain.PaymentConfig{Country: "PT"}) {
		t.Fatal("empty PT config cannot be configured")
	}
	if !domain.RecomputeConfigured(domain.PaymentConfig{Country: "PT", MBWayPhone: "912345678"}) {
		t.Fatal("PT config with an mbway phone is configured")
	}
	if domain.RecomputeConfigured(domain.PaymentConfig{Country: "BR", BankName: "Banco do Brasil"}) {
		t.Fatal("partial BR bank fields must not count as configured")
	}
	full := domain.PaymentConfig{Country: "BR", BankName: "Banco do Brasil", BankRoutingNumber: "1234", BankAccountNumber: "12345-6"}
	if !domain.RecomputeConfigured(full) {
		t.Fatal("complete BR bank triple is configured")
	}
}

func TestMethodConfigured(t *testing.T) {
	t.Parallel()

	cfg := domain.PaymentConfig{Country: "PT", MBWayPhone: "912345678"}
	if !domain.MethodConfigured(cfg, domain.MethodMBWay) {
		t.Fatal("mbway should be configured")
	}
	// multibanco requires no config fields; the entity can be platform-wide
	if !domain.MethodConfigured(cfg, domain.MethodMultibanco) {
		t.Fatal("multibanco should always be configured for a PT ong")
	}
	if domain.MethodConfigured(cfg, domain.MethodBankTransfer) {
		t.Fatal("bank_transfer without an iban must not be configured")
	}
	if domain.MethodConfigured(cfg, domain.MethodPix) {
		t.Fatal("pix is not a PT method")
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		cents int64
	}{
		{"25", 2500},
		{"25.5", 2550},
		{"25.00", 2500},
		{"0.01", 1},
	}
	for _, tc := range cases {
		got, err := domain.ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.in, err)
		}
		if got != tc.cents {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.cents)
		}
	}
	for _, in := range []string{"0", "0.00", "-5", "25.005", "abc", ""} {
		if _, err := domain.ParseAmount(in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("ParseAmount(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}

	// values whose cent total would not fit in int64 must be rejected, not
	// silently wrapped
	for _, in := range []string{"200000000000000000", "92233720368547758", "99999999999999999999"} {
		if _, err := domain.ParseAmount(in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("ParseAmount(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
	if got, err := domain.ParseAmount("92233720368547757.99"); err != nil || got != 9223372036854775799 {
		t.Fatalf("ParseAmount at the upper bound = %d, %v", got, err)
	}
}

func TestMultibancoReference(t *testing.T) {
	t.Parallel()

	ref := domain.MultibancoReference("11604", 42)
	if len(ref) != 9 {
		t.Fatalf("reference must be 9 digits, got %q", ref)
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			t.Fatalf("reference must be numeric, got %q", ref)
		}
	}
	if again := domain.MultibancoReference("11604", 42); again != ref {
		t.Fatalf("reference must be stable for the same sequence value: %q vs %q", ref, again)
	}

	// consecutive sequence values must never collide
	seen := map[string]uint64{}
	for seq := uint64(1); seq <= 5000; seq++ {
		r := domain.MultibancoReference("11604", seq)
		if prev, ok := seen[r]; ok {
			t.Fatalf("reference %q assigned to both %d and %d", r, prev, seq)
		}
		seen[r] = seq
	}

	// check digits verify against entity+base mod 97
	var base, check uint64
	for _, r := range ref[:7] {
		base = base*10 + uint64(r-'0')
	}
	for _, r := range ref[7:] {
		check = check*10 + uint64(r-'0')
	}
	if want := 98 - ((11604*1_000_000_000 + base*100) % 97); check != want {
		t.Fatalf("check digits %d do not verify, want %d", check, want)
	}

	if other := domain.MultibancoReference("11605", 42); other == ref {
		t.Fatal("different entities should not share a reference")
	}
}

func TestBuildPixPayload(t *testing.T) {
	t.Parallel()

	payload := domain.BuildPixPayload("donations@abrigo.org.br", "Abrigo Patinhas", "SAO PAULO", 2500, "tx123")
	if !strings.HasPrefix(payload, "000201") {
		t.Fatalf("payload must open with the format indicator, got %q", payload)
	}
	for _, fragment := range []string{"br.gov.bcb.pix", "donations@abrigo.org.br", "5303986", "540525.00", "5802BR", "tx123"} {
		if !strings.Contains(payload, fragment) {
			t.Fatalf("payload missing %q: %s", fragment, payload)
		}
	}

	// trailing 4 chars are the CRC-16/CCITT-FALSE of everything before them
	body, crcField := payload[:len(payload)-4], payload[len(payload)-4:]
	if !strings.HasSuffix(body, "6304") {
		t.Fatalf("payload must carry the CRC tag before the checksum: %s", payload)
	}
	crc := uint16(0xFFFF)
	for i := 0; i < len(body); i++ {
		crc ^= uint16(body[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	if crcFieldValue(crcField) != crc {
		t.Fatalf("crc %q does not verify against payload body", crcField)
	}

	long := domain.BuildPixPayload("12345678901", strings.Repeat("N", 60), strings.Repeat("C", 40), 100, strings.Repeat("t", 50))
	if strings.Contains(long, strings.Repeat("N", 26)) || strings.Contains(long, strings.Repeat("C", 16)) {
		t.Fatal("merchant name and city must be truncated to EMV limits")
	}

	// a multi-byte rune straddling the 25-byte name limit must be dropped
	// whole, never cut mid-sequence
	accented := domain.BuildPixPayload("12345678901", "Abrigo dos Animais Sao Jç", "SAO PAULO", 100, "tx123")
	if !utf8.ValidString(accented) {
		t.Fatalf("payload carries a broken utf-8 sequence: %q", accented)
	}
	if !strings.Contains(accented, "5924Abrigo dos Animais Sao J") {
		t.Fatalf("name must back off to the previous rune boundary: %q", accented)
	}
}

func crcFieldValue(hex string) uint16 {
	var v uint16
	for _, r := range hex {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= uint16(r - '0')
		case r >= 'A' && r <= 'F':
			v |= uint16(r-'A') + 10
		case r >= 'a' && r <= 'f':
			v |= uint16(r-'a') + 10
		}
	}
	return v
}

func TestSlotsForWindow(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // a Monday
	window := domain.DayWindow{OpenMin: 9 * 60, CloseMin: 18 * 60, LunchStartMin: 12 * 60, LunchEndMin: 13 * 60}

	slots := domain.SlotsForWindow(day, window, 30, 60)
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	starts := map[string]bool{}
	for _, slot := range slots {
		starts[slot.Start.Format("15:04")] = true
		if !slot.End.Equal(slot.Start.Add(time.Hour)) {
			t.Fatalf("slot %v must span the visit duration", slot.Start)
		}
	}
	for _, want := range []string{"09:00", "11:00", "13:00", "17:00"} {
		if !starts[want] {
			t.Fatalf("missing expected slot %s, got %v", want, starts)
		}
	}
	// 11:30 would run into lunch, 17:30 past closing
	for _, banned := range []string{"11:30", "12:00", "12:30", "17:30"} {
		if starts[banned] {
			t.Fatalf("slot %s must not be offered", banned)
		}
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	if domain.Overlaps(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)) {
		t.Fatal("back-to-back slots must not overlap")
	}
	if !domain.Overlaps(base, base.Add(time.Hour), base.Add(30*time.Minute), base.Add(90*time.Minute)) {
		t.Fatal("intersecting slots must overlap")
	}
}

func TestValidateException(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	closure := domain.AvailabilityException{Type: domain.ExceptionClosure, StartDate: start, EndDate: start.Add(48 * time.Hour)}
	if err := domain.ValidateException(closure); err != nil {
		t.Fatalf("valid closure rejected: %v", err)
	}
	backwards := domain.AvailabilityException{Type: domain.ExceptionClosure, StartDate: start, EndDate: start.Add(-24 * time.Hour)}
	if err := domain.ValidateException(backwards); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("end before start must fail, got %v", err)
	}
	special := domain.AvailabilityException{Type: domain.ExceptionSpecialHours, StartDate: start, EndDate: start, OpenMinute: 14 * 60, CloseMinute: 10 * 60}
	if err := domain.ValidateException(special); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("inverted special hours must fail, got %v", err)
	}
}
