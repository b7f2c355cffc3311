package notation

import (
	"testing"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		code string
		want [5]string // K Q R B N
	}{
		{"en", [5]string{"K", "Q", "R", "B", "N"}},
		{"de", [5]string{"K", "D", "T", "L", "S"}},
		{"fr", [5]string{"R", "D", "T", "F", "C"}},
		{"ru", [5]string{"Кр", "Ф", "Л", "С", "К"}},
		{"tr", [5]string{"Ş", "V", "K", "F", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			m, err := Language(tt.code)
			testutil.AssertNoError(t, err)
			var got [5]string
			for i, kind := range chess.NonPawnKinds {
				got[i] = m.Symbol(kind)
			}
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, m.Symbol(chess.Pawn), "")
		})
	}
}

func TestLanguage_Unknown(t *testing.T) {
	_, err := Language("xx")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownLanguage)
}

func TestAddLanguage(t *testing.T) {
	err := AddLanguage("en", "K", "Q", "R", "B", "N")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)

	err = AddLanguage("zz-empty", "K", "", "R", "B", "N")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	_, err = Language("zz-empty")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownLanguage)

	testutil.AssertNoError(t, AddLanguage("zz-test", "W", "X", "Y", "Z", "V"))
	m, err := Language("zz-test")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Symbol(chess.Queen), "X")
	testutil.AssertContains(t, joinCodes(Languages()), "zz-test")
}

func TestLanguages_Sorted(t *testing.T) {
	codes := Languages()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("Languages() not sorted: %v", codes)
		}
	}
	testutil.AssertContains(t, joinCodes(codes), "de en es fr")
}

func TestMappingKind(t *testing.T) {
	kind, ok := Figurines.Kind("♞")
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, kind, chess.Knight)
	_, ok = Figurines.Kind("N")
	testutil.AssertFalse(t, ok)
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{SAN, LAN, UCI, FAN} {
		got, err := ParseType(typ.String())
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, got, typ)
	}
	got, err := ParseType("lan")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, LAN)

	_, err = ParseType("xan")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	testutil.AssertEqual(t, Type(9).String(), "Type(9)")
}

func joinCodes(codes []string) string {
	s := ""
	for i, c := range codes {
		if i > 0 {
			s += " "
		}
		s += c
	}
	return s
}
