package charset

import "unicode/utf8"

// Guess picks the most plausible character set for data: "UTF-8",
// "Shift_JIS", "UTF-16" (only with a byte order mark) or "ISO-8859-1".
func Guess(data []byte) string {
	if len(data) > 2 &&
		((data[0] == 0xFE && data[1] == 0xFF) || (data[0] == 0xFF && data[1] == 0xFE)) {
		return "UTF-16"
	}

	highBytes := 0
	for _, b := range data {
		if b >= 0x80 {
			highBytes++
		}
	}
	if highBytes == 0 || utf8.Valid(data) {
		return "UTF-8"
	}

	canBeISO88591 := true
	for _, b := range data {
		if b > 0x7F && b < 0xA0 {
			canBeISO88591 = false
			break
		}
	}
	sjis := scanShiftJIS(data)
	if sjis.valid && (sjis.maxKatakanaRun >= 3 || sjis.maxDoubleByteRun >= 3) {
		return "Shift_JIS"
	}
	if canBeISO88591 || !sjis.valid {
		return "ISO-8859-1"
	}
	return "Shift_JIS"
}

type shiftJISScan struct {
	valid            bool
	maxKatakanaRun   int
	maxDoubleByteRun int
}

func scanShiftJIS(data []byte) shiftJISScan {
	s := shiftJISScan{valid: true}
	katakanaRun, doubleByteRun := 0, 0
	trailing := false
	for _, b := range data {
		switch {
		case trailing:
			if b < 0x40 || b == 0x7F || b > 0xFC {
				s.valid = false
				return s
			}
			trailing = false
		case b == 0x80 || b == 0xA0 || b > 0xEF:
			s.valid = false
			return s
		case b > 0xA0 && b < 0xE0:
			katakanaRun++
			doubleByteRun = 0
			s.maxKatakanaRun = max(s.maxKatakanaRun, katakanaRun)
		case b > 0x7F:
			trailing = true
			katakanaRun = 0
			doubleByteRun++
			s.maxDoubleByteRun = max(s.maxDoubleByteRun, doubleByteRun)
		default:
			katakanaRun, doubleByteRun = 0, 0
		}
	}
	if trailing {
		s.valid = false
	}
	return s
}
