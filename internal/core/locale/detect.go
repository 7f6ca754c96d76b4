package locale

import "time"

// Detection is the outcome of one locale resolution
type Detection struct {
	Locale     Locale    `json:"locale"`
	Source     Source    `json:"source"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// Signals are the optional inputs to Resolve. All fields may be zero;
// Resolve always produces a result
type Signals struct {
	// Override is a stored explicit user preference, it wins outright
	Override *Locale
	// Country is an ISO 3166-1 alpha-2 geo hint
	Country string
	// AcceptLanguage is the raw browser language header
	AcceptLanguage string
}

// Options tune resolution; zero value uses package defaults
type Options struct {
	Default Locale
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Default == "" {
		o.Default = Default
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Resolve picks the locale to render from the available signals.
//
// Precedence: a valid stored override wins with confidence 1.0. Otherwise
// the browser and geo candidates compete on confidence, ties going to the
// browser. With no usable signal the default locale is returned with
// confidence 0 and source browser.
func Resolve(sig Signals, opts Options) Detection {
	o := opts.withDefaults()
	at := o.Now()

	if sig.Override != nil && Valid(*sig.Override) {
		return Detection{Locale: *sig.Override, Source: SourceUser, Confidence: 1.0, At: at}
	}

	browserLoc, browserConf := FromAcceptLanguage(sig.AcceptLanguage)
	geoLoc, geoConf := FromCountry(sig.Country)

	switch {
	case browserConf == 0 && geoConf == 0:
		return Detection{Locale: o.Default, Source: SourceBrowser, Confidence: 0, At: at}
	case geoConf > browserConf:
		return Detection{Locale: geoLoc, Source: SourceGeo, Confidence: geoConf, At: at}
	default:
		return Detection{Locale: browserLoc, Source: SourceBrowser, Confidence: browserConf, At: at}
	}
}
