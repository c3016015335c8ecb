package conv

import "testing"

func TestItoa(t *testing.T) {
	var buf [20]byte
	cases := map[int64]string{0: "0", 7: "7", 100: "100", -42: "-42"}
	for n, want := range cases {
		if got := string(Itoa(buf[:], n)); got != want {
			t.Fatalf("Itoa(%d)=%q want %q", n, got, want)
		}
	}
	if got := Itoa(nil, 5); len(got) != 0 {
		t.Fatalf("Itoa on empty buffer should be empty")
	}
}

func TestAppendInt(t *testing.T) {
	b := []byte("a=")
	b = AppendInt(b, 75)
	b = append(b, " b="...)
	b = AppendInt(b, 0)
	if string(b) != "a=75 b=0" {
		t.Fatalf("AppendInt got %q", b)
	}
}
