package currency

// Code identifies a supported currency by its ISO 4217 code.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	NGN Code = "NGN"
)

var supported = []Code{USD, EUR, GBP, NGN}

// Supported reports whether the code belongs to the fixed currency set.
func Supported(code Code) bool {
	for _, c := range supported {
		if c == code {
			return true
		}
	}
	return false
}

// Codes returns the fixed set of supported currencies.
func Codes() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}
