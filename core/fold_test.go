package core

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain ascii", in: "John Smith 42", want: "John Smith 42"},
		{name: "full name", in: "Nguyễn Văn Đức", want: "Nguyen Van Duc"},
		{name: "lowercase dyet", in: "đồng", want: "dong"},
		{name: "a family", in: "à á ạ ả ã â ầ ấ ậ ẩ ẫ ă ằ ắ ặ ẳ ẵ", want: "a a a a a a a a a a a a a a a a a"},
		{name: "e family", in: "è é ẹ ẻ ẽ ê ề ế ệ ể ễ", want: "e e e e e e e e e e e"},
		{name: "i family", in: "ì í ị ỉ ĩ", want: "i i i i i"},
		{name: "o family", in: "ò ó ọ ỏ õ ô ồ ố ộ ổ ỗ ơ ờ ớ ợ ở ỡ", want: "o o o o o o o o o o o o o o o o o"},
		{name: "u family", in: "ù ú ụ ủ ũ ư ừ ứ ự ử ữ", want: "u u u u u u u u u u u"},
		{name: "y family", in: "ỳ ý ỵ ỷ ỹ", want: "y y y y y"},
		{name: "uppercase", in: "ĐẶNG THÙY TRÂM", want: "DANG THUY TRAM"},
		{name: "decomposed input", in: norm.NFD.String("Trần Hưng Đạo"), want: "Tran Hung Dao"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{
		"Nguyễn Văn Đức",
		"Phạm Thị Lan Hương",
		"đđĐĐ",
		"already folded",
		norm.NFD.String("Lê Quý Đôn"), // partially normalized caller input
	}
	for _, in := range inputs {
		once := Fold(in)
		if twice := Fold(once); twice != once {
			t.Errorf("Fold(Fold(%q)) = %q, want %q", in, twice, once)
		}
	}
}
