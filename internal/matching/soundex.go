package matching

import (
	"strings"
	"unicode"
)

const soundexLength = 6

// soundexCode groups similar sounding consonants. Vowels and other letters are 0.
func soundexCode(r rune) byte {
	switch r {
	case 'B', 'F', 'P', 'V', 'W':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	}
	return '0'
}

// Soundex returns a six character sound code for a player name, so that
// spellings such as Fischer and Fisher compare equal. Non-letters are ignored.
func Soundex(name string) string {
	var letters []rune
	for _, r := range strings.ToUpper(name) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteRune(letters[0])
	n := 1
	last := soundexCode(letters[0])
	for _, r := range letters[1:] {
		if n == soundexLength {
			break
		}
		code := soundexCode(r)
		if code == '0' {
			continue
		}
		if code != last {
			sb.WriteByte(code)
			n++
		}
		last = code
	}
	for ; n < soundexLength; n++ {
		sb.WriteByte('0')
	}
	return sb.String()
}
