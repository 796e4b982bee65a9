package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  string
		want   language.Tag
		wantOK bool
	}{
		{value: "pt-BR", want: language.MustParse("pt-BR"), wantOK: true},
		{value: "en-US", want: language.MustParse("en-US"), wantOK: true},
		{value: "", want: DefaultTag(), wantOK: false},
		{value: "not a tag!", want: DefaultTag(), wantOK: false},
		{value: "ja-JP", want: DefaultTag(), wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.value)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) = %v, %v, want %v, %v", tc.value, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTags(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want %v", got, DefaultTag())
	}
	got := MatchTags([]language.Tag{language.MustParse("pt-BR"), language.English})
	if got != language.MustParse("pt-BR") {
		t.Fatalf("MatchTags(pt-BR, en) = %v, want pt-BR", got)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.Japanese
	if SupportedTags()[0] != DefaultTag() {
		t.Fatal("SupportedTags() exposed internal slice")
	}
}
