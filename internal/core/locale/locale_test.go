package locale

import (
	"testing"
	"time"
)

func TestParse_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Locale
		ok   bool
	}{
		{name: "bare en", in: "en", want: English, ok: true},
		{name: "region variant", in: "en-US", want: English, ok: true},
		{name: "posix locale", in: "zh_CN.UTF-8", want: Chinese, ok: true},
		{name: "uppercase", in: "ZH-TW", want: Chinese, ok: true},
		{name: "whitespace", in: "  en  ", want: English, ok: true},
		{name: "unsupported", in: "fr-FR", ok: false},
		{name: "empty", in: "", ok: false},
		{name: "garbage", in: "...", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.in)
			if ok != tc.ok {
				t.Fatalf("Parse(%q) ok=%v want %v", tc.in, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("Parse(%q)=%q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    Locale
		minConf float64
	}{
		{name: "exact zh first", header: "zh-CN,zh;q=0.9,en;q=0.8", want: Chinese, minConf: 0.5},
		{name: "exact en", header: "en", want: English, minConf: 0.9},
		{name: "weighted english wins", header: "fr;q=0.9,en;q=0.8", want: English, minConf: 0.5},
		{name: "region only match", header: "en-GB", want: English, minConf: 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, conf := FromAcceptLanguage(tc.header)
			if got != tc.want {
				t.Fatalf("locale=%q want %q (conf %v)", got, tc.want, conf)
			}
			if conf < tc.minConf {
				t.Fatalf("confidence %v below %v", conf, tc.minConf)
			}
		})
	}

	// malformed and unsupported headers are no signal, not an error
	for _, h := range []string{"", ";;;", "not a header !!", "xx-YY"} {
		if loc, conf := FromAcceptLanguage(h); conf != 0 {
			t.Fatalf("header %q: expected no signal, got %q at %v", h, loc, conf)
		}
	}
}

func TestFromCountry(t *testing.T) {
	if loc, conf := FromCountry("CN"); loc != Chinese || conf != 0.7 {
		t.Fatalf("CN => %q %v", loc, conf)
	}
	if loc, conf := FromCountry("us"); loc != English || conf != 0.6 {
		t.Fatalf("us => %q %v", loc, conf)
	}
	for _, c := range []string{"", "ZZ", "DEU", "1"} {
		if _, conf := FromCountry(c); conf != 0 {
			t.Fatalf("country %q should yield no signal", c)
		}
	}
}

func TestResolve_Precedence(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	opts := Options{Now: func() time.Time { return now }}

	t.Run("override wins outright", func(t *testing.T) {
		zh := Chinese
		d := Resolve(Signals{Override: &zh, Country: "US", AcceptLanguage: "en"}, opts)
		if d.Locale != Chinese || d.Source != SourceUser || d.Confidence != 1.0 {
			t.Fatalf("got %+v", d)
		}
		if !d.At.Equal(now) {
			t.Fatalf("At=%v want %v", d.At, now)
		}
	})

	t.Run("invalid override ignored", func(t *testing.T) {
		bad := Locale("fr")
		d := Resolve(Signals{Override: &bad, AcceptLanguage: "en"}, opts)
		if d.Source != SourceBrowser || d.Locale != English {
			t.Fatalf("got %+v", d)
		}
	})

	t.Run("browser beats weaker geo", func(t *testing.T) {
		d := Resolve(Signals{Country: "US", AcceptLanguage: "zh-CN"}, opts)
		if d.Locale != Chinese || d.Source != SourceBrowser {
			t.Fatalf("got %+v", d)
		}
	})

	t.Run("geo wins when browser silent", func(t *testing.T) {
		d := Resolve(Signals{Country: "CN"}, opts)
		if d.Locale != Chinese || d.Source != SourceGeo || d.Confidence != 0.7 {
			t.Fatalf("got %+v", d)
		}
	})

	t.Run("tie goes to browser", func(t *testing.T) {
		// craft equal confidence by comparing the same strength signals:
		// geo 0.7 vs browser exact 0.95 is not a tie, so use a low-quality
		// browser match against no geo to assert browser still reported
		d := Resolve(Signals{AcceptLanguage: "en-GB", Country: ""}, opts)
		if d.Source != SourceBrowser {
			t.Fatalf("got %+v", d)
		}
	})

	t.Run("no signal falls back to default", func(t *testing.T) {
		d := Resolve(Signals{}, opts)
		if d.Locale != Default || d.Source != SourceBrowser || d.Confidence != 0 {
			t.Fatalf("got %+v", d)
		}
	})

	t.Run("malformed inputs treated as absent", func(t *testing.T) {
		d := Resolve(Signals{AcceptLanguage: ";;;", Country: "???"}, opts)
		if d.Locale != Default || d.Confidence != 0 {
			t.Fatalf("got %+v", d)
		}
	})
}
