package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	pixGUI          = "br.gov.bcb.pix"
	pixMaxNameLen   = 25
	pixMaxCityLen   = 15
	pixMaxTxIDLen   = 25
)

// BuildPixPayload assembles a static EMV "copia e cola" BR Code carrying the
// receiving key, merchant identity, amount and a reconciliation txid. The
// donor pastes it (or scans its QR rendering) in any brazilian banking app.
func BuildPixPayload(key, merchantName, merchantCity string, amountCents int64, txID string) string {
	var b strings.Builder
	writeTLV(&b, "00", "01")

	var account strings.Builder
	writeTLV(&account, "00", pixGUI)
	writeTLV(&account, "01", key)
	writeTLV(&b, "26", account.String())

	writeTLV(&b, "52", "0000")
	writeTLV(&b, "53", "986")
	writeTLV(&b, "54", FormatAmount(amountCents))
	writeTLV(&b, "58", "BR")
	writeTLV(&b, "59", truncateField(merchantName, pixMaxNameLen))
	writeTLV(&b, "60", truncateField(merchantCity, pixMaxCityLen))

	var additional strings.Builder
	writeTLV(&additional, "05", truncateField(txID, pixMaxTxIDLen))
	writeTLV(&b, "62", additional.String())

	payload := b.String() + "6304"
	return payload + fmt.Sprintf("%04X", crc16CCITT(payload))
}

func writeTLV(b *strings.Builder, id, value string) {
	fmt.Fprintf(b, "%s%02d%s", id, len(value), value)
}

// truncateField clamps a value to the EMV byte limit without splitting a
// multi-byte rune; ONG names routinely carry ç/ã.
func truncateField(v string, max int) string {
	v = strings.TrimSpace(v)
	if len(v) <= max {
		return v
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(v[cut]) {
		cut--
	}
	return v[:cut]
}

// crc16CCITT computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as
// required by the BR Code field 63.
func crc16CCITT(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
